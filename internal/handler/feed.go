package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-cafe/job-alerts/internal/listing"
	"github.com/golang-cafe/job-alerts/internal/server"
	"github.com/golang-cafe/job-alerts/internal/session"

	"github.com/gorilla/feeds"
	"github.com/gosimple/slug"
)

// ServeMatchesRSSFeed lists the job matches for the session. A session
// without alerts gets an empty channel, like the empty matches panel.
func ServeMatchesRSSFeed(svr server.Server, reg *session.Registry, catalogue *listing.Catalogue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, err := reg.Get(w, r)
		if err != nil {
			svr.Log(err, "unable to resolve session")
			svr.XML(w, http.StatusInternalServerError, []byte{})
			return
		}
		hasAlerts := store.Len() > 0
		if hasAlerts {
			if cached, ok := svr.CacheGet(server.CacheKeyMatchesFeed); ok {
				svr.XML(w, http.StatusOK, cached)
				return
			}
		}

		cfg := svr.GetConfig()
		siteURL := cfg.URLProtocol + cfg.SiteHost
		feed := &feeds.Feed{
			Title:       fmt.Sprintf("%s Job Matches", cfg.SiteName),
			Link:        &feeds.Link{Href: siteURL},
			Description: fmt.Sprintf("%s Job Matches", cfg.SiteName),
			Author:      &feeds.Author{Name: cfg.SiteName},
			Created:     time.Now(),
		}
		if hasAlerts {
			for _, j := range catalogue.All() {
				feed.Items = append(feed.Items, &feeds.Item{
					Id:          j.ID,
					Title:       fmt.Sprintf("%s with %s - %s", j.Title, j.Company, j.Location),
					Link:        &feeds.Link{Href: fmt.Sprintf("%s/#job-%s", siteURL, slug.Make(j.Title))},
					Description: fmt.Sprintf("%d%% match. %s, %s. Posted %s.", j.Match, j.Type, j.Salary, j.Posted),
				})
			}
		}
		rssFeed, err := feed.ToRss()
		if err != nil {
			svr.Log(err, "unable to convert rss feed to xml")
			svr.XML(w, http.StatusInternalServerError, []byte{})
			return
		}
		if hasAlerts {
			if err := svr.CacheSet(server.CacheKeyMatchesFeed, []byte(rssFeed)); err != nil {
				svr.Log(err, "unable to cache matches feed")
			}
		}
		svr.XML(w, http.StatusOK, []byte(rssFeed))
	}
}
