package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/controllers"
	"github.com/vnkhanh/e-learning-backend/middleware"
	"github.com/vnkhanh/e-learning-backend/ws"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logingoogle", controllers.GoogleLogin)
	}

	// Đọc công khai: danh mục hoạt động, nội dung, ảnh, chủ đề
	public := api.Group("")
	{
		public.Use(middleware.OptionalAuthMiddleware(), middleware.DBMiddleware(db))

		public.GET("/topics", controllers.GetTopics)
		public.GET("/topics/:id", controllers.GetTopicDetail)
		public.GET("/topics/:id/matching", controllers.GetMatchingByTopic)

		public.GET("/content", controllers.GetContent)
		public.GET("/content/:id", controllers.GetContentDetail)

		public.GET("/images", controllers.GetImages)

		public.GET("/matching", controllers.GetMatchingActivities)
		public.GET("/matching/:id", controllers.GetMatchingActivity)
		public.GET("/matching/:id/questions", controllers.GetMatchingQuestions)
	}

	// Cần đăng nhập: làm bài, lịch sử, streak
	user := api.Group("")
	{
		user.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db))

		user.POST("/auth/change-password", controllers.ChangePassword)

		user.POST("/matching-attempts", controllers.StartAttempt)
		user.PATCH("/matching-attempts/:id", controllers.CompleteAttempt)
		user.GET("/matching-attempts/:id", controllers.GetAttempt)

		user.GET("/students/:studentId/attempts", controllers.GetStudentAttempts)
		user.GET("/students/:studentId/attempts/summary", controllers.GetStudentAttemptSummary)
		user.GET("/streaks/:studentId", controllers.GetStudentStreak)

		// Phiên làm bài server-side (board + sequencer)
		user.POST("/play-sessions", controllers.StartPlaySession)
		user.GET("/play-sessions/:id", controllers.GetPlaySession)
		user.POST("/play-sessions/:id/place", controllers.PlaceItem)
		user.POST("/play-sessions/:id/submit", controllers.SubmitBoard)
		user.POST("/play-sessions/:id/continue", controllers.ContinueSession)
		user.DELETE("/play-sessions/:id", controllers.AbandonSession)
	}

	admin := api.Group("/admin")
	{
		admin.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db), middleware.RequireRoles("admin", "teacher"))

		admin.POST("/users/teachers", controllers.AdminCreateTeacher)

		//Quản lý chủ đề
		admin.POST("/topics", controllers.CreateTopic)
		admin.PUT("/topics/:id", controllers.UpdateTopic)
		admin.DELETE("/topics/:id", controllers.DeleteTopic)

		//Quản lý nội dung
		admin.POST("/content", controllers.CreateContent)
		admin.PUT("/content/:id", controllers.UpdateContent)
		admin.DELETE("/content/:id", controllers.DeleteContent)
		admin.POST("/content/:id/voiceover", controllers.GenerateContentVoiceover)

		//Quản lý ảnh
		admin.POST("/images", controllers.UploadImage)
		admin.PUT("/images/:id", controllers.UpdateImage)
		admin.DELETE("/images/:id", controllers.DeleteImage)

		//Quản lý hoạt động ghép cặp
		admin.POST("/matching", controllers.CreateMatching)
		admin.PUT("/matching/:id", controllers.UpdateMatching)
		admin.DELETE("/matching/:id", controllers.DeleteMatching)
		admin.POST("/matching/generate", controllers.GenerateMatchingFromDocument)

		//Tiện ích
		admin.POST("/tts", controllers.TextToSpeechHandler)

		//Thống kê
		admin.GET("/stats/overview", controllers.GetStatsOverview)
		admin.GET("/stats/daily-attempts", controllers.GetDailyAttempts)
		admin.GET("/stats/top-activities", controllers.GetTopActivities)
		admin.GET("/stats/top-students", controllers.GetTopStudents)
	}

	r.GET("/ws/matching/:id", ws.HandleMatchingWebSocket)
	r.GET("/ws/status", ws.HandleGlobalWebSocket)

	return r
}
