package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		profileViewsTotal,
		linkClicksTotal,
		profileLookupsTotal,
	)
}

var (
	profileViewsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_views_total",
			Help: "Public profile views recorded.",
		},
	)

	linkClicksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "link_clicks_total",
			Help: "Public link click-throughs recorded.",
		},
	)

	// result: ok|hidden - "hidden" covers both unknown usernames and
	// profiles that are not publicly activated; the split is not
	// observable from outside.
	profileLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_lookups_total",
			Help: "Public profile lookups by result.",
		},
		[]string{"result"},
	)
)

func IncProfileView() { profileViewsTotal.Inc() }

func IncLinkClick() { linkClicksTotal.Inc() }

func IncProfileLookup(result string) { profileLookupsTotal.WithLabelValues(norm(result)).Inc() }
