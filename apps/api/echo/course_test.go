package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/trezcool/adxsetup/core"
	"github.com/trezcool/adxsetup/core/course"
)

func Test_courseApi_queryPublic(t *testing.T) {
	resetDB(t)

	t.Run("empty store falls back", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/courses")
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body = %s", rec.Code, rec.Body.String())
		}
		var courses []PublicCourseResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &courses); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}
		if len(courses) != 3 {
			t.Fatalf("len = %d, want 3", len(courses))
		}
		wantIDs := []string{"normal", "premium", "high"}
		for i, want := range wantIDs {
			if courses[i].ID != want {
				t.Errorf("courses[%d].ID = %q, want %q", i, courses[i].ID, want)
			}
		}
		// fallback entries are never persisted
		stored, _ := crsRepo.QueryAllCourses(context.Background())
		if len(stored) != 0 {
			t.Errorf("fallback persisted: %+v", stored)
		}
	})

	t.Run("stored course with whatsapp link", func(t *testing.T) {
		resetDB(t)
		crs, err := crsRepo.CreateCourse(context.Background(), course.Course{
			Title:          "Premium Setup",
			Description:    "d",
			Price:          "₦15,000",
			WhatsappNumber: "+234 801 234 5678",
		})
		if err != nil {
			t.Fatalf("CreateCourse(): %v", err)
		}

		req, rec := newRequest(http.MethodGet, "/v1/courses")
		app.ServeHTTP(rec, req)
		var courses []PublicCourseResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &courses); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}
		if len(courses) != 1 || courses[0].ID != crs.ID {
			t.Fatalf("courses = %+v", courses)
		}

		link, err := url.Parse(courses[0].WhatsappLink)
		if err != nil {
			t.Fatalf("parsing whatsapp_link: %v", err)
		}
		if link.Host != "wa.me" || link.Path != "/2348012345678" {
			t.Errorf("whatsapp_link = %q", courses[0].WhatsappLink)
		}
		if got := link.Query().Get("text"); got != core.CourseInquiryMessage("Premium Setup") {
			t.Errorf("inquiry text = %q", got)
		}
	})

	t.Run("insertion order preserved", func(t *testing.T) {
		resetDB(t)
		first, _ := crsRepo.CreateCourse(context.Background(), course.Course{Title: "first", Description: "d", Price: "p"})
		_, _ = crsRepo.CreateCourse(context.Background(), course.Course{Title: "second", Description: "d", Price: "p"})

		req, rec := newRequest(http.MethodGet, "/v1/courses")
		app.ServeHTTP(rec, req)
		var courses []PublicCourseResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &courses); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}
		if len(courses) != 2 || courses[0].ID != first.ID {
			t.Errorf("courses = %+v", courses)
		}
	})
}

func Test_courseApi_create(t *testing.T) {
	resetDB(t)

	admin := createOperator(t, "courses@test.cd", true)
	adminToken := getToken(t, admin)

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/courses", marshallObj(t, course.NewCourse{}))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)}, rec)
	})

	t.Run("missing required fields", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/courses", adminToken, []byte(`{}`))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{
				"title":       "this field is required",
				"description": "this field is required",
				"price":       "this field is required",
			}),
		}, rec)
	})

	t.Run("created", func(t *testing.T) {
		body := marshallObj(t, course.NewCourse{
			Title:       "Custom Setup",
			Description: "bespoke",
			Price:       "₦25,000",
			Features:    []string{"Everything", "", "More"},
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/courses", adminToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; body = %s", rec.Code, rec.Body.String())
		}
		var crs course.Course
		if err := json.Unmarshal(rec.Body.Bytes(), &crs); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}
		if crs.ID == "" || crs.CreatedAt.IsZero() {
			t.Errorf("id/created_at not stamped: %+v", crs)
		}
		if len(crs.Features) != 2 {
			t.Errorf("features = %v, want blanks dropped", crs.Features)
		}
	})
}

func Test_courseApi_replace(t *testing.T) {
	resetDB(t)

	admin := createOperator(t, "replace@test.cd", true)
	adminToken := getToken(t, admin)

	crs, _ := crsRepo.CreateCourse(context.Background(), course.Course{Title: "old", Description: "d", Price: "p"})
	body := marshallObj(t, course.UpdateCourse{Title: "new", Description: "d2", Price: "p2"})

	tests := []httpTest{
		{name: "auth required", path: "/v1/courses/" + crs.ID, body: body, wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)},
		{
			name: "not found", path: "/v1/courses/unknown-id", token: adminToken, body: body,
			wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "not found"}),
		},
		{name: "replaced", path: "/v1/courses/" + crs.ID, token: adminToken, body: body, wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPut, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusOK {
				refreshed, _ := crsRepo.GetCourseByID(context.Background(), crs.ID)
				if refreshed.Title != "new" || refreshed.Price != "p2" {
					t.Errorf("not replaced: %+v", refreshed)
				}
			}
		})
	}
}

func Test_courseApi_destroy(t *testing.T) {
	resetDB(t)

	admin := createOperator(t, "coursedel@test.cd", true)
	adminToken := getToken(t, admin)

	crs, _ := crsRepo.CreateCourse(context.Background(), course.Course{Title: "doomed", Description: "d", Price: "p"})

	req, rec := newAuthRequest(http.MethodDelete, "/v1/courses/"+crs.ID, adminToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("code = %v, want %v", rec.Code, http.StatusNoContent)
	}
	if _, err := crsRepo.GetCourseByID(context.Background(), crs.ID); err != course.ErrNotFound {
		t.Errorf("GetCourseByID() error = %v, want %v", err, course.ErrNotFound)
	}
}
