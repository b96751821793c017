package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/okian/mergington/internal/adapters/http/api"
	service "github.com/okian/mergington/internal/app"
	"github.com/okian/mergington/internal/domain/activity"
	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/internal/domain/types"
	"github.com/okian/mergington/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// failingDeps returns an unexpected error from every operation.
type failingDeps struct{}

var errBoom = errors.New("boom")

func (failingDeps) ListActivities(context.Context) ([]activity.Activity, error) {
	return nil, errBoom
}

func (failingDeps) Enroll(context.Context, string, string) (model.Membership, error) {
	return model.Membership{}, errBoom
}

func (failingDeps) Withdraw(context.Context, string, string) (model.Membership, error) {
	return model.Membership{}, errBoom
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newMux(deps api.Dependencies, stats api.StatsProvider) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, stats, nil).Register(context.Background(), mux)
	return mux
}

func newServiceMux() *http.ServeMux {
	svc, err := service.New()
	So(err, ShouldBeNil)
	return newMux(svc, svc)
}

func do(mux http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func membershipPath(name, action, email string) string {
	return "/activities/" + url.PathEscape(name) + "/" + action + "?email=" + url.QueryEscape(email)
}

func decodeActivities(w *httptest.ResponseRecorder) types.Activities {
	var out types.Activities
	So(json.Unmarshal(w.Body.Bytes(), &out), ShouldBeNil)
	return out
}

func decodeMessage(w *httptest.ResponseRecorder) string {
	var out types.Message
	So(json.Unmarshal(w.Body.Bytes(), &out), ShouldBeNil)
	return out.Message
}

func decodeDetail(w *httptest.ResponseRecorder) string {
	var out types.ErrorDetail
	So(json.Unmarshal(w.Body.Bytes(), &out), ShouldBeNil)
	return out.Detail
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newServiceMux()

		Convey("Then the health endpoint serves metrics", func() {
			w := do(mux, http.MethodGet, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "mergington_activities_catalog_size")
		})

		Convey("Then the stats endpoint returns JSON", func() {
			w := do(mux, http.MethodGet, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			var stats map[string]interface{}
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats["activities"], ShouldEqual, float64(9))
		})

		Convey("Then unknown paths return 404", func() {
			w := do(mux, http.MethodGet, "/unknown")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then a wrong method on a known route returns 405", func() {
			So(do(mux, http.MethodGet, membershipPath("Chess Club", "signup", "a@b.c")).Code,
				ShouldEqual, http.StatusMethodNotAllowed)
			So(do(mux, http.MethodPost, "/activities").Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("Then every response carries a request ID", func() {
			w := do(mux, http.MethodGet, "/activities")
			So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
		})

		Convey("Then a caller-supplied request ID is echoed", func() {
			req := httptest.NewRequest(http.MethodGet, "/activities", nil)
			req.Header.Set(api.RequestIDHeader, "req-123")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "req-123")
		})
	})
}

func TestActivities_List(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		mux := newServiceMux()

		Convey("When listing activities", func() {
			w := do(mux, http.MethodGet, "/activities")

			Convey("Then all nine activities are returned as JSON", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
				acts := decodeActivities(w)
				So(acts, ShouldHaveLength, 9)
				So(acts["Chess Club"].MaxParticipants, ShouldEqual, 12)
				So(acts["Chess Club"].Participants, ShouldNotBeNil)
				So(acts["Chess Club"].Participants, ShouldBeEmpty)
				So(acts["Programming Class"].Participants, ShouldResemble,
					[]string{"emma@mergington.edu", "sophia@mergington.edu"})
			})

			Convey("Then empty participant lists encode as arrays", func() {
				So(w.Body.String(), ShouldContainSubstring, `"participants":[]`)
			})
		})
	})
}

func TestActivities_Signup(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		mux := newServiceMux()

		Convey("When a new student signs up for a name with spaces", func() {
			w := do(mux, http.MethodPost, membershipPath("Chess Club", "signup", "new@mergington.edu"))

			Convey("Then the signup is confirmed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decodeMessage(w), ShouldEqual, "Signed up new@mergington.edu for Chess Club")
			})

			Convey("Then the participant is listed", func() {
				acts := decodeActivities(do(mux, http.MethodGet, "/activities"))
				So(acts["Chess Club"].Participants, ShouldResemble, []string{"new@mergington.edu"})
			})

			Convey("And the same student signs up again", func() {
				w := do(mux, http.MethodPost, membershipPath("Chess Club", "signup", "new@mergington.edu"))

				Convey("Then it is rejected as a duplicate", func() {
					So(w.Code, ShouldEqual, http.StatusBadRequest)
					So(decodeDetail(w), ShouldEqual, "Student is already signed up")
				})
			})
		})

		Convey("When signing up for an unknown activity", func() {
			w := do(mux, http.MethodPost, membershipPath("Knitting", "signup", "a@mergington.edu"))

			Convey("Then 404 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(decodeDetail(w), ShouldEqual, "Activity not found")
			})
		})

		Convey("When the activity name differs only by case", func() {
			w := do(mux, http.MethodPost, membershipPath("chess club", "signup", "a@mergington.edu"))

			Convey("Then the lookup is exact", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the email parameter is missing", func() {
			w := do(mux, http.MethodPost, "/activities/Chess%20Club/signup")

			Convey("Then 422 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				So(decodeDetail(w), ShouldEqual, "email query parameter is required")
			})
		})

		Convey("When the email is an arbitrary string", func() {
			w := do(mux, http.MethodPost, membershipPath("Chess Club", "signup", "not an email"))

			Convey("Then it is accepted as-is", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decodeMessage(w), ShouldEqual, "Signed up not an email for Chess Club")
			})
		})
	})
}

func TestActivities_Unregister(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		mux := newServiceMux()

		Convey("When a seeded participant unregisters", func() {
			w := do(mux, http.MethodDelete, membershipPath("Programming Class", "unregister", "emma@mergington.edu"))

			Convey("Then the removal is confirmed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decodeMessage(w), ShouldEqual, "Unregistered emma@mergington.edu from Programming Class")
			})

			Convey("Then the remaining participants keep their order", func() {
				acts := decodeActivities(do(mux, http.MethodGet, "/activities"))
				So(acts["Programming Class"].Participants, ShouldResemble, []string{"sophia@mergington.edu"})
			})

			Convey("And the same participant unregisters again", func() {
				w := do(mux, http.MethodDelete, membershipPath("Programming Class", "unregister", "emma@mergington.edu"))

				Convey("Then it is rejected", func() {
					So(w.Code, ShouldEqual, http.StatusBadRequest)
					So(decodeDetail(w), ShouldEqual, "Student is not registered for this activity")
				})
			})
		})

		Convey("When unregistering from an unknown activity", func() {
			w := do(mux, http.MethodDelete, membershipPath("Knitting", "unregister", "a@mergington.edu"))

			Convey("Then 404 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(decodeDetail(w), ShouldEqual, "Activity not found")
			})
		})

		Convey("When the email parameter is missing", func() {
			w := do(mux, http.MethodDelete, "/activities/Chess%20Club/unregister")

			Convey("Then 422 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			})
		})
	})
}

func TestActivities_Scenario(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		mux := newServiceMux()
		const email = "new@mergington.edu"

		Convey("When a student signs up, duplicates, withdraws and withdraws again", func() {
			first := do(mux, http.MethodPost, membershipPath("Chess Club", "signup", email))
			dup := do(mux, http.MethodPost, membershipPath("Chess Club", "signup", email))
			out := do(mux, http.MethodDelete, membershipPath("Chess Club", "unregister", email))
			again := do(mux, http.MethodDelete, membershipPath("Chess Club", "unregister", email))
			final := decodeActivities(do(mux, http.MethodGet, "/activities"))

			Convey("Then each step returns the expected status", func() {
				So(first.Code, ShouldEqual, http.StatusOK)
				So(dup.Code, ShouldEqual, http.StatusBadRequest)
				So(out.Code, ShouldEqual, http.StatusOK)
				So(again.Code, ShouldEqual, http.StatusBadRequest)
				So(final["Chess Club"].Participants, ShouldBeEmpty)
			})
		})
	})
}

func TestActivities_CapacityEnforced(t *testing.T) {
	Convey("Given a registry that enforces capacity", t, func() {
		svc, err := service.New(
			service.WithCatalog([]activity.Activity{{Name: "Solo", MaxParticipants: 1}}),
			service.WithCapacityEnforcement(true),
		)
		So(err, ShouldBeNil)
		mux := newMux(svc, svc)

		Convey("When the second student signs up", func() {
			So(do(mux, http.MethodPost, membershipPath("Solo", "signup", "a@x")).Code, ShouldEqual, http.StatusOK)
			w := do(mux, http.MethodPost, membershipPath("Solo", "signup", "b@x"))

			Convey("Then the activity is reported full", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeDetail(w), ShouldEqual, "Activity is full")
			})
		})
	})
}

func TestActivities_UnexpectedErrors(t *testing.T) {
	Convey("Given dependencies that fail unexpectedly", t, func() {
		mux := newMux(failingDeps{}, &mockStatsProvider{stats: map[string]interface{}{}})

		Convey("Then every route returns a generic 500", func() {
			for _, w := range []*httptest.ResponseRecorder{
				do(mux, http.MethodGet, "/activities"),
				do(mux, http.MethodPost, membershipPath("Chess Club", "signup", "a@x")),
				do(mux, http.MethodDelete, membershipPath("Chess Club", "unregister", "a@x")),
			} {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(decodeDetail(w), ShouldEqual, "Internal Server Error")
			}
		})
	})
}

func TestStatsHandler(t *testing.T) {
	Convey("Given a stats provider", t, func() {
		provider := &mockStatsProvider{stats: map[string]interface{}{"participants": 3}}
		h := api.NewStatsHandler(provider)

		Convey("When stats are requested", func() {
			w := httptest.NewRecorder()
			h.HandleStats(w, httptest.NewRequest(http.MethodGet, "/stats", nil))

			Convey("Then the provider's map is encoded", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"participants":3`)
			})
		})
	})
}
