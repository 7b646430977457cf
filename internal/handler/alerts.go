package handler

import (
	"net/http"

	"github.com/golang-cafe/job-alerts/internal/alert"
	"github.com/golang-cafe/job-alerts/internal/listing"
	"github.com/golang-cafe/job-alerts/internal/server"
	"github.com/golang-cafe/job-alerts/internal/session"

	"github.com/gorilla/mux"
)

type option struct {
	Value    string
	Label    string
	Selected bool
}

func IndexPageHandler(svr server.Server, reg *session.Registry, catalogue *listing.Catalogue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, err := reg.Get(w, r)
		if err != nil {
			svr.Log(err, "unable to resolve session")
			svr.JSON(w, http.StatusInternalServerError, "Oops! An internal error has occurred")
			return
		}
		renderIndex(svr, w, store, catalogue)
	}
}

func renderIndex(svr server.Server, w http.ResponseWriter, store *alert.Store, catalogue *listing.Catalogue) {
	alerts := store.Alerts()
	draft := store.Draft()

	jobTypes := make([]option, 0, len(alert.JobTypes))
	for _, jt := range alert.JobTypes {
		jobTypes = append(jobTypes, option{Value: string(jt), Label: jt.Label(), Selected: jt == draft.JobType})
	}
	frequencies := make([]option, 0, len(alert.Frequencies))
	for _, f := range alert.Frequencies {
		frequencies = append(frequencies, option{Value: string(f), Label: f.Label(), Selected: f == draft.Frequency})
	}

	// matches are only offered once there is something to match against
	var listings []listing.JobListing
	var stats listing.Stats
	if len(alerts) > 0 {
		listings = catalogue.All()
		stats = catalogue.Stats()
	}

	err := svr.Render(w, http.StatusOK, "index.html", map[string]interface{}{
		"View":        string(store.View()),
		"Alerts":      alerts,
		"AlertCount":  len(alerts),
		"Draft":       draft,
		"JobTypes":    jobTypes,
		"Frequencies": frequencies,
		"Listings":    listings,
		"MatchStats":  stats,
	})
	if err != nil {
		svr.Log(err, "unable to render index page")
	}
}

func SelectViewHandler(svr server.Server, reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, err := reg.Get(w, r)
		if err != nil {
			svr.Log(err, "unable to resolve session")
			svr.JSON(w, http.StatusInternalServerError, "Oops! An internal error has occurred")
			return
		}
		store.SelectView(alert.View(mux.Vars(r)["view"]))
		svr.Redirect(w, r, http.StatusSeeOther, "/")
	}
}

func CreateAlertHandler(svr server.Server, reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, err := reg.Get(w, r)
		if err != nil {
			svr.Log(err, "unable to resolve session")
			svr.JSON(w, http.StatusInternalServerError, "Oops! An internal error has occurred")
			return
		}
		draft := alert.Draft{
			Keywords:  r.FormValue("keywords"),
			Location:  r.FormValue("location"),
			JobType:   alert.ParseJobType(r.FormValue("job-type")),
			Frequency: alert.ParseFrequency(r.FormValue("frequency")),
		}
		if _, ok := store.Create(draft); !ok {
			logger := svr.Logger()
			logger.Debug().Msg("alert without keywords not created")
			// keep what was typed so the form comes back filled in
			store.SetDraft(draft)
		}
		svr.Redirect(w, r, http.StatusSeeOther, "/")
	}
}

func ToggleAlertHandler(svr server.Server, reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, err := reg.Get(w, r)
		if err != nil {
			svr.Log(err, "unable to resolve session")
			svr.JSON(w, http.StatusInternalServerError, "Oops! An internal error has occurred")
			return
		}
		store.Toggle(r.FormValue("alert-id"))
		svr.Redirect(w, r, http.StatusSeeOther, "/")
	}
}

func DeleteAlertHandler(svr server.Server, reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, err := reg.Get(w, r)
		if err != nil {
			svr.Log(err, "unable to resolve session")
			svr.JSON(w, http.StatusInternalServerError, "Oops! An internal error has occurred")
			return
		}
		store.Delete(r.FormValue("alert-id"))
		svr.Redirect(w, r, http.StatusSeeOther, "/")
	}
}

func ListAlertsHandler(svr server.Server, reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, err := reg.Get(w, r)
		if err != nil {
			svr.Log(err, "unable to resolve session")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"alerts": store.Alerts(),
			"view":   store.View(),
		})
	}
}

func HealthHandler(svr server.Server, reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"sessions": reg.Len(),
		})
	}
}
