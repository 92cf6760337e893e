package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	status := api.Group("/status", handler.AuthRequired)
	status.Get("", handler.GetWeekStatus)
	status.Get("/:userId", handler.GetUserWeekStatus)

	workouts := api.Group("/workouts", handler.AuthRequired)
	workouts.Get("/feed", handler.GetWorkoutFeed)
	workouts.Get("/user/:userId", handler.GetUserWorkouts)
	workouts.Post("", handler.LogWorkout)
	workouts.Post("/:id/flag", handler.FlagWorkout)
	workouts.Post("/:id/vote", handler.VoteOnWorkout)

	summaries := api.Group("/summaries", handler.AuthRequired)
	summaries.Get("/week/:weekId", handler.GetWeekSummaries)
	summaries.Get("/user/:userId", handler.GetUserSummaries)

	settlement := api.Group("/settlement", handler.AuthRequired)
	settlement.Post("/close", handler.CloseWeek)

	absences := api.Group("/absences", handler.AuthRequired)
	absences.Post("", handler.PlanAbsence)
	absences.Get("/user/:userId", handler.GetUserAbsences)

	justifications := api.Group("/justifications", handler.AuthRequired)
	justifications.Post("", handler.SubmitJustification)
	justifications.Get("/week/:weekId", handler.GetWeekJustifications)

	flags := api.Group("/flags", handler.AuthRequired)
	flags.Get("/open", handler.GetOpenFlags)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
