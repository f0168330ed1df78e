package students

import (
	"github.com/gofiber/fiber/v2"

	"github.com/netarcx/Mentor-Manager-sub001/app/routes/auth"
)

func SetupStudentRoutes(app *fiber.App) {
	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetAllStudentsAPI)
	api.Post("/", CreateStudentAPI)
	api.Get("/:id", GetStudentAPI)
	api.Put("/:id", UpdateStudentAPI)
	api.Delete("/:id", DeleteStudentAPI)

	attendance := app.Group("/api/attendance")
	attendance.Use(auth.AuthMiddleware)

	attendance.Get("/date/:date", GetAttendanceByDateAPI)
	attendance.Post("/checkin", CheckInStudentAPI)
	attendance.Post("/checkout", CheckOutStudentAPI)
	attendance.Get("/stats", GetAttendanceStatsAPI)
}
