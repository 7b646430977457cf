package handler

import (
	"github.com/golang-cafe/job-alerts/internal/listing"
	"github.com/golang-cafe/job-alerts/internal/server"
	"github.com/golang-cafe/job-alerts/internal/session"
)

func RegisterRoutes(svr server.Server, reg *session.Registry, catalogue *listing.Catalogue) {
	svr.RegisterRoute("/", IndexPageHandler(svr, reg, catalogue), []string{"GET"})

	// switch panel
	svr.RegisterRoute("/x/v/{view}", SelectViewHandler(svr, reg), []string{"POST"})

	// create alert
	svr.RegisterRoute("/x/a", CreateAlertHandler(svr, reg), []string{"POST"})

	// list alerts as json
	svr.RegisterRoute("/x/a", ListAlertsHandler(svr, reg), []string{"GET"})

	// toggle alert
	svr.RegisterRoute("/x/a/t", ToggleAlertHandler(svr, reg), []string{"POST"})

	// delete alert
	svr.RegisterRoute("/x/a/d", DeleteAlertHandler(svr, reg), []string{"POST"})

	svr.RegisterRoute("/matches.rss", ServeMatchesRSSFeed(svr, reg, catalogue), []string{"GET"})
	svr.RegisterRoute("/health", HealthHandler(svr, reg), []string{"GET"})
}
