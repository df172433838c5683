package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zoobzio/clockz"

	"shipping-management/internal/app"
	"shipping-management/internal/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type apiClient struct {
	router http.Handler
}

func (a *apiClient) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		So(err, ShouldBeNil)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func (a *apiClient) login(email, password string) string {
	rec, env := a.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": password})
	So(rec.Code, ShouldEqual, http.StatusOK)

	var auth struct {
		AccessToken string `json:"access_token"`
	}
	So(json.Unmarshal(env.Data, &auth), ShouldBeNil)
	So(auth.AccessToken, ShouldNotBeEmpty)
	return auth.AccessToken
}

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Environment: "test"},
		JWT:       config.JWTConfig{Secret: "router-test-secret", ExpiryHours: 1},
		RateLimit: config.RateLimitConfig{GeneralRPS: 1000, GeneralBurst: 1000},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		},
		Scheduler: config.SchedulerConfig{SystemUserEmail: "admin@example.com"},
		Sequence:  config.SequenceConfig{ShipmentPrefix: "SHP"},
		Bootstrap: config.BootstrapConfig{AdminEmail: "admin@example.com", AdminPassword: "admin1234"},
	}
}

func decode(raw json.RawMessage, out interface{}) {
	So(json.Unmarshal(raw, out), ShouldBeNil)
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Convey("Given the API backed by in-memory storage", t, func() {
		clock := clockz.NewFakeClock()
		container := app.New(testConfig(), app.MemoryRepositories(clock), clock)
		So(container.EnsureAdmin(context.Background()), ShouldBeNil)
		api := &apiClient{router: SetupRoutes(container)}

		Convey("health answers without authentication", func() {
			rec, _ := api.do(http.MethodGet, "/health", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)
		})

		Convey("protected routes require a token", func() {
			rec, _ := api.do(http.MethodGet, "/api/v1/shipments", "", nil)
			So(rec.Code, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("a wrong password is rejected", func() {
			rec, _ := api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
				"email": "admin@example.com", "password": "wrong-pass1",
			})
			So(rec.Code, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("When the administrator is logged in", func() {
			admin := api.login("admin@example.com", "admin1234")

			rec, env := api.do(http.MethodPost, "/api/v1/carriers", admin, map[string]interface{}{
				"name": "Local courier", "kind": "fixed", "sla_delivery_days": 2,
			})
			So(rec.Code, ShouldEqual, http.StatusCreated)
			var createdCarrier struct {
				ID uuid.UUID `json:"id"`
			}
			decode(env.Data, &createdCarrier)

			Convey("a shipment can be created, listed and confirmed", func() {
				rec, env := api.do(http.MethodPost, "/api/v1/shipments", admin, map[string]interface{}{
					"carrier_id": createdCarrier.ID,
				})
				So(rec.Code, ShouldEqual, http.StatusCreated)
				var sh struct {
					ID    uuid.UUID `json:"id"`
					Name  string    `json:"name"`
					State string    `json:"state"`
				}
				decode(env.Data, &sh)
				So(sh.State, ShouldEqual, "draft")
				So(sh.Name, ShouldStartWith, "SHP/")

				rec, env = api.do(http.MethodGet, "/api/v1/shipments", admin, nil)
				So(rec.Code, ShouldEqual, http.StatusOK)
				var list struct {
					Total int64 `json:"total"`
				}
				decode(env.Data, &list)
				So(list.Total, ShouldEqual, 1)

				rec, env = api.do(http.MethodPost, "/api/v1/shipments/actions", admin, map[string]interface{}{
					"action": "confirm", "shipment_ids": []uuid.UUID{sh.ID},
				})
				So(rec.Code, ShouldEqual, http.StatusOK)
				var result struct {
					Changed []struct {
						State string `json:"state"`
					} `json:"changed"`
				}
				decode(env.Data, &result)
				So(result.Changed, ShouldHaveLength, 1)
				So(result.Changed[0].State, ShouldEqual, "confirmed")
			})

			Convey("unknown and malformed shipment ids are told apart", func() {
				rec, _ := api.do(http.MethodGet, "/api/v1/shipments/"+uuid.NewString(), admin, nil)
				So(rec.Code, ShouldEqual, http.StatusNotFound)

				rec, _ = api.do(http.MethodGet, "/api/v1/shipments/not-an-id", admin, nil)
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})

			Convey("a salesperson can read shipments but not dispatch them", func() {
				rec, _ := api.do(http.MethodPost, "/api/v1/admin/users", admin, map[string]interface{}{
					"email": "sales@example.com", "password": "sales1234", "full_name": "Sales Rep", "role": "salesperson",
				})
				So(rec.Code, ShouldEqual, http.StatusCreated)
				sales := api.login("sales@example.com", "sales1234")

				rec, _ = api.do(http.MethodGet, "/api/v1/shipments", sales, nil)
				So(rec.Code, ShouldEqual, http.StatusOK)

				rec, _ = api.do(http.MethodPost, "/api/v1/shipments", sales, map[string]interface{}{
					"carrier_id": createdCarrier.ID,
				})
				So(rec.Code, ShouldEqual, http.StatusForbidden)

				rec, _ = api.do(http.MethodPost, "/api/v1/carriers", sales, map[string]interface{}{
					"name": "Another", "kind": "fixed",
				})
				So(rec.Code, ShouldEqual, http.StatusForbidden)
			})

			Convey("a delivery order attachment can be downloaded", func() {
				var customer, warehouse struct {
					ID uuid.UUID `json:"id"`
				}
				_, env := api.do(http.MethodPost, "/api/v1/partners", admin, map[string]interface{}{
					"name": "Ana Garcia", "city": "MADRID", "zip": "28001", "country_code": "ES",
				})
				decode(env.Data, &customer)
				_, env = api.do(http.MethodPost, "/api/v1/partners", admin, map[string]interface{}{
					"name": "Main warehouse", "city": "GETAFE", "zip": "28901", "country_code": "ES",
				})
				decode(env.Data, &warehouse)

				rec, env := api.do(http.MethodPost, "/api/v1/pickings", admin, map[string]interface{}{
					"name": "WH/OUT/00001", "partner_id": customer.ID, "warehouse_partner_id": warehouse.ID,
				})
				So(rec.Code, ShouldEqual, http.StatusCreated)
				var p struct {
					ID uuid.UUID `json:"id"`
				}
				decode(env.Data, &p)

				rec, env = api.do(http.MethodPost, "/api/v1/pickings/"+p.ID.String()+"/attachments", admin, map[string]interface{}{
					"name": "invoice.pdf", "mime_type": "application/pdf", "data": []byte("%PDF-1.4"),
				})
				So(rec.Code, ShouldEqual, http.StatusCreated)
				var att struct {
					ID uuid.UUID `json:"id"`
				}
				decode(env.Data, &att)

				rec, _ = api.do(http.MethodGet, "/api/v1/attachments/"+att.ID.String()+"/download", admin, nil)
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldEqual, "application/pdf")
				So(rec.Body.String(), ShouldEqual, "%PDF-1.4")
			})
		})
	})
}
