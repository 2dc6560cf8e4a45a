package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the profile module. Tracks profile
// creation, vocabulary churn and the duration of the two fan-out paths.
type Metrics struct {
	ServerProfilesCreated prometheus.Counter
	UserProfilesCreated   prometheus.Counter
	WordsFlagged          prometheus.Counter
	WordsUnflagged        prometheus.Counter
	UnflagFanoutDuration  prometheus.Histogram
	RemoveUserDuration    prometheus.Histogram
}

// New creates a Metrics instance with all profile module metrics registered.
func New() *Metrics {
	return &Metrics{
		ServerProfilesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wordwatch_server_profiles_created_total",
			Help: "Total number of server profiles created",
		}),
		UserProfilesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wordwatch_user_profiles_created_total",
			Help: "Total number of user profiles created (single and bulk)",
		}),
		WordsFlagged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wordwatch_words_flagged_total",
			Help: "Total number of words added to server vocabularies",
		}),
		WordsUnflagged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wordwatch_words_unflagged_total",
			Help: "Total number of words removed from server vocabularies",
		}),
		UnflagFanoutDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "wordwatch_unflag_fanout_duration_seconds",
			Help:    "Duration of whole-server user unflag operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		RemoveUserDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "wordwatch_remove_user_duration_seconds",
			Help:    "Duration of user removal including the server rollback",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncrementServerProfilesCreated records a successful server profile creation.
func (m *Metrics) IncrementServerProfilesCreated() {
	m.ServerProfilesCreated.Inc()
}

// AddUserProfilesCreated records n successful user profile creations.
func (m *Metrics) AddUserProfilesCreated(n int) {
	m.UserProfilesCreated.Add(float64(n))
}

// AddWordsFlagged records n words inserted into a server vocabulary.
func (m *Metrics) AddWordsFlagged(n int) {
	m.WordsFlagged.Add(float64(n))
}

// AddWordsUnflagged records n words removed from a server vocabulary.
func (m *Metrics) AddWordsUnflagged(n int) {
	m.WordsUnflagged.Add(float64(n))
}

// ObserveUnflagFanout records the duration of a whole-server user unflag.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveUnflagFanout(start time.Time) {
	m.UnflagFanoutDuration.Observe(time.Since(start).Seconds())
}

// ObserveRemoveUser records the duration of a user removal.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveRemoveUser(start time.Time) {
	m.RemoveUserDuration.Observe(time.Since(start).Seconds())
}
