package people_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/campushub/campushub/internal/app/features/errors"
	"github.com/campushub/campushub/internal/app/features/people"
	"github.com/campushub/campushub/internal/app/system/authutil"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/campushub/campushub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*people.Handler, *mongo.Database) {
	db := testutil.SetupTestDB(t)
	testutil.BootTemplates(t)
	logger := zap.NewNop()
	return people.NewHandler(db, errors.NewErrorLogger(logger), logger), db
}

func asUser(u models.User) testutil.TestUser {
	return testutil.TestUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	}
}

func TestServeList_FiltersByRole(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	manager := fx.CreateUser(ctx, "Pat Lane", "pat@school.edu", models.RoleManager, "Front Office")
	fx.CreateUser(ctx, "Avery Cole", "avery@school.edu", models.RoleTeacher, "Math")
	fx.CreateUser(ctx, "Sam Ortiz", "sam@school.edu", models.RoleStudent, "")

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/people?role=teacher", asUser(manager))
	rec := testutil.NewRecorder()
	handler.ServeList(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Avery Cole")
	if strings.Contains(rec.Body.String(), "Sam Ortiz") {
		t.Error("role filter leaked a student into the teacher list")
	}
}

func TestServeList_SearchMatchesNamePrefix(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	manager := fx.CreateUser(ctx, "Pat Lane", "pat@school.edu", models.RoleManager, "")
	fx.CreateUser(ctx, "Beatriz Núñez", "beatriz@school.edu", models.RoleTeacher, "Science")
	fx.CreateUser(ctx, "Chris Park", "chris@school.edu", models.RoleTeacher, "Math")

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/people?search=beat", asUser(manager))
	rec := testutil.NewRecorder()
	handler.ServeList(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Beatriz")
	if strings.Contains(rec.Body.String(), "Chris Park") {
		t.Error("search leaked a non-matching teacher")
	}
}

func TestHandleCreate_CreatesAccount(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	manager := fx.CreateUser(ctx, "Pat Lane", "pat@school.edu", models.RoleManager, "")

	form := url.Values{
		"full_name":  {"New Teacher"},
		"email":      {"NEW.Teacher@School.edu"},
		"role":       {"teacher"},
		"department": {"History"},
		"password":   {"first-password"},
	}
	req := testutil.NewFormRequest("/people", form.Encode(), asUser(manager))
	rec := testutil.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
	}

	var stored models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"email": "new.teacher@school.edu"}).Decode(&stored); err != nil {
		t.Fatalf("created user not found: %v", err)
	}
	if stored.Role != models.RoleTeacher {
		t.Errorf("role = %q, want %q", stored.Role, models.RoleTeacher)
	}
	if stored.Status != "active" {
		t.Errorf("status = %q, want active", stored.Status)
	}
	if !authutil.CheckPassword("first-password", stored.PasswordHash) {
		t.Error("stored hash does not verify the initial password")
	}
	if loc := rec.Header().Get("Location"); loc != "/people/"+stored.ID.Hex() {
		t.Errorf("redirect = %q, want the new person's page", loc)
	}
}

func TestHandleCreate_DuplicateEmailRejected(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	manager := fx.CreateUser(ctx, "Pat Lane", "pat@school.edu", models.RoleManager, "")
	fx.CreateUser(ctx, "Avery Cole", "avery@school.edu", models.RoleTeacher, "Math")

	form := url.Values{
		"full_name": {"Avery Clone"},
		"email":     {"avery@school.edu"},
		"role":      {"teacher"},
	}
	req := testutil.NewFormRequest("/people", form.Encode(), asUser(manager))
	rec := testutil.NewRecorder()
	handler.HandleCreate(rec, req)

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	rec.AssertContains(t, "already exists")

	n, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": "avery@school.edu"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("duplicate create inserted a second account, count = %d", n)
	}
}

func TestHandleCreate_ShortPasswordRejected(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	manager := fx.CreateUser(ctx, "Pat Lane", "pat@school.edu", models.RoleManager, "")

	form := url.Values{
		"full_name": {"Short PW"},
		"email":     {"short@school.edu"},
		"role":      {"student"},
		"password":  {"abc"},
	}
	req := testutil.NewFormRequest("/people", form.Encode(), asUser(manager))
	rec := testutil.NewRecorder()
	handler.HandleCreate(rec, req)

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	if n, _ := db.Collection("users").CountDocuments(ctx, bson.M{"email": "short@school.edu"}); n != 0 {
		t.Error("rejected create still inserted an account")
	}
}

func TestHandleSetStatus_DisablesAccount(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	manager := fx.CreateUser(ctx, "Pat Lane", "pat@school.edu", models.RoleManager, "")
	target := fx.CreateUser(ctx, "Sam Ortiz", "sam@school.edu", models.RoleStudent, "")

	req := testutil.NewFormRequest("/people/"+target.ID.Hex()+"/status",
		url.Values{"status": {"disabled"}}.Encode(), asUser(manager))
	req = testutil.WithChiURLParam(req, "id", target.ID.Hex())
	rec := testutil.NewRecorder()
	handler.HandleSetStatus(rec, req)

	rec.AssertRedirect(t, "/people/"+target.ID.Hex()+"?success=status")

	var stored models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": target.ID}).Decode(&stored); err != nil {
		t.Fatal(err)
	}
	if stored.Status != "disabled" {
		t.Errorf("status = %q, want disabled", stored.Status)
	}
}

func TestHandleSetStatus_SelfDisableRejected(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	manager := fx.CreateUser(ctx, "Pat Lane", "pat@school.edu", models.RoleManager, "")
	// Second manager so the last-manager guard is not what trips.
	fx.CreateUser(ctx, "Other Manager", "other@school.edu", models.RoleManager, "")

	req := testutil.NewFormRequest("/people/"+manager.ID.Hex()+"/status",
		url.Values{"status": {"disabled"}}.Encode(), asUser(manager))
	req = testutil.WithChiURLParam(req, "id", manager.ID.Hex())
	rec := testutil.NewRecorder()
	handler.HandleSetStatus(rec, req)

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	rec.AssertContains(t, "your own account")
}

func TestHandleSetStatus_LastManagerGuard(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	only := fx.CreateUser(ctx, "Only Manager", "only@school.edu", models.RoleManager, "")
	other := fx.CreateUser(ctx, "Other Manager", "other2@school.edu", models.RoleManager, "")

	// Acting as one manager, disabling the other is fine; then the
	// survivor becomes the last active manager and is protected.
	req := testutil.NewFormRequest("/people/"+other.ID.Hex()+"/status",
		url.Values{"status": {"disabled"}}.Encode(), asUser(only))
	req = testutil.WithChiURLParam(req, "id", other.ID.Hex())
	rec := testutil.NewRecorder()
	handler.HandleSetStatus(rec, req)
	rec.AssertRedirect(t, "/people/"+other.ID.Hex()+"?success=status")

	req = testutil.NewFormRequest("/people/"+only.ID.Hex()+"/status",
		url.Values{"status": {"disabled"}}.Encode(), asUser(other))
	req = testutil.WithChiURLParam(req, "id", only.ID.Hex())
	rec = testutil.NewRecorder()
	handler.HandleSetStatus(rec, req)

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	rec.AssertContains(t, "last active manager")

	var stored models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": only.ID}).Decode(&stored); err != nil {
		t.Fatal(err)
	}
	if stored.Status != "active" {
		t.Errorf("last manager status = %q, want active", stored.Status)
	}
}

func TestHandleResetPassword_SetsNewHash(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	manager := fx.CreateUser(ctx, "Pat Lane", "pat@school.edu", models.RoleManager, "")
	target := fx.CreateUser(ctx, "No Password", "nopass@school.edu", models.RoleStudent, "")

	req := testutil.NewFormRequest("/people/"+target.ID.Hex()+"/password",
		url.Values{"new_password": {"handed-out-1"}}.Encode(), asUser(manager))
	req = testutil.WithChiURLParam(req, "id", target.ID.Hex())
	rec := testutil.NewRecorder()
	handler.HandleResetPassword(rec, req)

	rec.AssertRedirect(t, "/people/"+target.ID.Hex()+"?success=password")

	var stored models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": target.ID}).Decode(&stored); err != nil {
		t.Fatal(err)
	}
	if !authutil.CheckPassword("handed-out-1", stored.PasswordHash) {
		t.Error("stored hash does not verify the new password")
	}
}

func postRoster(t *testing.T, handler *people.Handler, user testutil.TestUser, csv string) *testutil.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("roster", "roster.csv")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(csv)); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/people/import", user)
	req.Body = io.NopCloser(&buf)
	req.ContentLength = int64(buf.Len())
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := testutil.NewRecorder()
	handler.HandleImport(rec, req)
	return rec
}

func TestHandleImport_CreatesAndSkips(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	manager := fx.CreateUser(ctx, "Pat Lane", "pat@school.edu", models.RoleManager, "")
	fx.CreateUser(ctx, "Avery Cole", "avery@school.edu", models.RoleTeacher, "Math")

	csv := "Full Name,Email,Role,Department\n" +
		"Avery Cole,avery@school.edu,teacher,Math\n" +
		"New Student,new.student@school.edu,student,\n" +
		"New Teacher,new.teacher@school.edu,teacher,Science\n"

	rec := postRoster(t, handler, asUser(manager), csv)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "2 created")
	rec.AssertContains(t, "1 skipped")

	var stored models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"email": "new.teacher@school.edu"}).Decode(&stored); err != nil {
		t.Fatalf("imported teacher not found: %v", err)
	}
	if stored.Department != "Science" {
		t.Errorf("department = %q, want Science", stored.Department)
	}
	if stored.PasswordHash != "" {
		t.Error("imported accounts must start without a password")
	}
}

func TestHandleImport_InvalidRoleRejectsWholeFile(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	manager := fx.CreateUser(ctx, "Pat Lane", "pat@school.edu", models.RoleManager, "")

	csv := "Full Name,Email,Role\n" +
		"Good Row,good@school.edu,student\n" +
		"Bad Row,bad@school.edu,principal\n"

	rec := postRoster(t, handler, asUser(manager), csv)

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	rec.AssertContains(t, "invalid or missing role")

	if n, _ := db.Collection("users").CountDocuments(ctx, bson.M{"email": "good@school.edu"}); n != 0 {
		t.Error("a rejected file must not create any accounts")
	}
}

func TestServePerson_UnknownIDNotFound(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	manager := fx.CreateUser(ctx, "Pat Lane", "pat@school.edu", models.RoleManager, "")

	missing := primitive.NewObjectID().Hex()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/people/"+missing, asUser(manager))
	req = testutil.WithChiURLParam(req, "id", missing)
	rec := testutil.NewRecorder()
	handler.ServePerson(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
}
