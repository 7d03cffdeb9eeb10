package server_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dovewell/wellness-server/affiliations"
	"github.com/dovewell/wellness-server/clients"
	"github.com/dovewell/wellness-server/contacts"
	"github.com/dovewell/wellness-server/policies"
	"github.com/dovewell/wellness-server/prices"
	"github.com/dovewell/wellness-server/therapies"
)

func TestTherapyCRUDAndPublicListing(t *testing.T) {
	f := newTestFixture(t)
	pair := f.login(t, "admin", "admin123")

	created := f.do(t, http.MethodPost, "/api/admin/therapies", pair.AccessToken, map[string]any{
		"name":              "Reflexology",
		"short_description": "Pressure point massage of the feet",
		"display_order":     1,
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	var therapy therapies.Therapy
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &therapy))
	require.NotEmpty(t, therapy.ID)
	require.True(t, therapy.IsActive)

	publicList := f.do(t, http.MethodGet, "/api/therapies?active_only=true", "", nil)
	require.Equal(t, http.StatusOK, publicList.Code)
	var listed []therapies.Therapy
	require.NoError(t, json.Unmarshal(publicList.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	require.Equal(t, "Reflexology", listed[0].Name)

	updated := f.do(t, http.MethodPut, "/api/admin/therapies/"+therapy.ID, pair.AccessToken, map[string]any{
		"is_active": false,
	})
	require.Equal(t, http.StatusOK, updated.Code)

	publicList = f.do(t, http.MethodGet, "/api/therapies?active_only=true", "", nil)
	require.NoError(t, json.Unmarshal(publicList.Body.Bytes(), &listed))
	require.Empty(t, listed)
}

func TestTherapyDeleteCascadesPrices(t *testing.T) {
	f := newTestFixture(t)
	pair := f.login(t, "admin", "admin123")

	created := f.do(t, http.MethodPost, "/api/admin/therapies", pair.AccessToken, map[string]any{
		"name":              "Aromatherapy",
		"short_description": "Essential oil massage",
	})
	var therapy therapies.Therapy
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &therapy))

	price := f.do(t, http.MethodPost, "/api/admin/prices", pair.AccessToken, map[string]any{
		"therapy_id": therapy.ID,
		"name":       "Full session",
		"duration":   "60 min",
		"price":      45.0,
	})
	require.Equal(t, http.StatusCreated, price.Code, price.Body.String())

	deleted := f.do(t, http.MethodDelete, "/api/admin/therapies/"+therapy.ID, pair.AccessToken, nil)
	require.Equal(t, http.StatusNoContent, deleted.Code)

	remaining := f.do(t, http.MethodGet, "/api/prices", "", nil)
	var priceList []prices.Price
	require.NoError(t, json.Unmarshal(remaining.Body.Bytes(), &priceList))
	require.Empty(t, priceList)
}

func TestPriceCreateRequiresExistingTherapy(t *testing.T) {
	f := newTestFixture(t)
	pair := f.login(t, "admin", "admin123")

	rec := f.do(t, http.MethodPost, "/api/admin/prices", pair.AccessToken, map[string]any{
		"therapy_id": "missing",
		"name":       "Full session",
		"duration":   "60 min",
		"price":      45.0,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContactSubmissionFlow(t *testing.T) {
	f := newTestFixture(t)

	submitted := f.do(t, http.MethodPost, "/api/contact", "", map[string]string{
		"name":    "Jo Bloggs",
		"email":   "jo@example.com",
		"message": "Do you treat plantar fasciitis?",
	})
	require.Equal(t, http.StatusCreated, submitted.Code, submitted.Body.String())

	var submission contacts.Submission
	require.NoError(t, json.Unmarshal(submitted.Body.Bytes(), &submission))
	require.False(t, submission.IsRead)

	pair := f.login(t, "admin", "admin123")

	unread := f.do(t, http.MethodGet, "/api/admin/contacts?unread_only=true", pair.AccessToken, nil)
	var inbox []contacts.Submission
	require.NoError(t, json.Unmarshal(unread.Body.Bytes(), &inbox))
	require.Len(t, inbox, 1)

	marked := f.do(t, http.MethodPut, "/api/admin/contacts/"+submission.ID+"/read", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, marked.Code)

	unread = f.do(t, http.MethodGet, "/api/admin/contacts?unread_only=true", pair.AccessToken, nil)
	require.NoError(t, json.Unmarshal(unread.Body.Bytes(), &inbox))
	require.Empty(t, inbox)

	noted := f.do(t, http.MethodPut, "/api/admin/contacts/"+submission.ID+"/notes", pair.AccessToken, map[string]string{
		"notes": "Replied by phone",
	})
	require.Equal(t, http.StatusOK, noted.Code)
	var withNotes contacts.Submission
	require.NoError(t, json.Unmarshal(noted.Body.Bytes(), &withNotes))
	require.Equal(t, "Replied by phone", withNotes.Notes)
}

func TestContactSubmitRequiresFields(t *testing.T) {
	f := newTestFixture(t)

	rec := f.do(t, http.MethodPost, "/api/contact", "", map[string]string{"name": "Jo"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContactAdminRoutesRequireAuth(t *testing.T) {
	f := newTestFixture(t)

	rec := f.do(t, http.MethodGet, "/api/admin/contacts", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "no token", detailOf(t, rec))
}

func TestPolicySlugLookupAndUniqueness(t *testing.T) {
	f := newTestFixture(t)
	pair := f.login(t, "admin", "admin123")

	created := f.do(t, http.MethodPost, "/api/admin/policies", pair.AccessToken, map[string]any{
		"title":   "Cancellation Policy",
		"slug":    "cancellation",
		"content": "48 hours notice please.",
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	bySlug := f.do(t, http.MethodGet, "/api/policies/slug/cancellation", "", nil)
	require.Equal(t, http.StatusOK, bySlug.Code)
	var policy policies.Policy
	require.NoError(t, json.Unmarshal(bySlug.Body.Bytes(), &policy))
	require.Equal(t, "Cancellation Policy", policy.Title)

	duplicate := f.do(t, http.MethodPost, "/api/admin/policies", pair.AccessToken, map[string]any{
		"title":   "Another",
		"slug":    "cancellation",
		"content": "duplicate slug",
	})
	require.Equal(t, http.StatusBadRequest, duplicate.Code)
}

func TestSettingsDefaultsAndUpsert(t *testing.T) {
	f := newTestFixture(t)

	defaults := f.do(t, http.MethodGet, "/api/settings", "", nil)
	require.Equal(t, http.StatusOK, defaults.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(defaults.Body.Bytes(), &body))
	require.Equal(t, "White Dove Wellness", body["business_name"])

	pair := f.login(t, "admin", "admin123")
	updated := f.do(t, http.MethodPut, "/api/admin/settings", pair.AccessToken, map[string]any{
		"tagline": "Reflexology & Holistic Therapies",
		"social_links": map[string]string{
			"facebook_url": "https://facebook.com/whitedove",
		},
	})
	require.Equal(t, http.StatusOK, updated.Code)

	fetched := f.do(t, http.MethodGet, "/api/settings", "", nil)
	require.NoError(t, json.Unmarshal(fetched.Body.Bytes(), &body))
	require.Equal(t, "Reflexology & Holistic Therapies", body["tagline"])
	require.Equal(t, "White Dove Wellness", body["business_name"])
}

func TestClientAndNoteLifecycle(t *testing.T) {
	f := newTestFixture(t)
	pair := f.login(t, "admin", "admin123")

	created := f.do(t, http.MethodPost, "/api/admin/clients", pair.AccessToken, map[string]string{
		"first_name": "Alex",
		"last_name":  "Morgan",
		"email":      "alex@example.com",
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	var client clients.Client
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &client))

	search := f.do(t, http.MethodGet, "/api/admin/clients?search=morg", pair.AccessToken, nil)
	var found []clients.Client
	require.NoError(t, json.Unmarshal(search.Body.Bytes(), &found))
	require.Len(t, found, 1)

	note := f.do(t, http.MethodPost, "/api/admin/clients/"+client.ID+"/notes", pair.AccessToken, map[string]string{
		"note":         "First session, focused on lower back",
		"session_date": "2026-08-30",
	})
	require.Equal(t, http.StatusCreated, note.Code, note.Body.String())
	var createdNote clients.Note
	require.NoError(t, json.Unmarshal(note.Body.Bytes(), &createdNote))
	require.Equal(t, "admin", createdNote.CreatedBy)

	notes := f.do(t, http.MethodGet, "/api/admin/clients/"+client.ID+"/notes", pair.AccessToken, nil)
	var noteList []clients.Note
	require.NoError(t, json.Unmarshal(notes.Body.Bytes(), &noteList))
	require.Len(t, noteList, 1)

	deleted := f.do(t, http.MethodDelete, "/api/admin/clients/"+client.ID, pair.AccessToken, nil)
	require.Equal(t, http.StatusNoContent, deleted.Code)

	missingNotes := f.do(t, http.MethodGet, "/api/admin/clients/"+client.ID+"/notes", pair.AccessToken, nil)
	require.Equal(t, http.StatusNotFound, missingNotes.Code)
}

func TestAffiliationCRUD(t *testing.T) {
	f := newTestFixture(t)
	pair := f.login(t, "admin", "admin123")

	created := f.do(t, http.MethodPost, "/api/admin/affiliations", pair.AccessToken, map[string]any{
		"name":     "Association of Reflexologists",
		"logo_url": "/images/uploads/aor.png",
	})
	require.Equal(t, http.StatusCreated, created.Code)
	var affiliation affiliations.Affiliation
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &affiliation))

	public := f.do(t, http.MethodGet, "/api/affiliations?active_only=true", "", nil)
	var listed []affiliations.Affiliation
	require.NoError(t, json.Unmarshal(public.Body.Bytes(), &listed))
	require.Len(t, listed, 1)

	deleted := f.do(t, http.MethodDelete, "/api/admin/affiliations/"+affiliation.ID, pair.AccessToken, nil)
	require.Equal(t, http.StatusNoContent, deleted.Code)
}

func TestAdminUserManagement(t *testing.T) {
	f := newTestFixture(t)
	pair := f.login(t, "admin", "admin123")

	created := f.do(t, http.MethodPost, "/api/admin/users", pair.AccessToken, map[string]string{
		"username": "assistant",
		"email":    "assistant@example.com",
		"password": "S3cure-pass",
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	duplicate := f.do(t, http.MethodPost, "/api/admin/users", pair.AccessToken, map[string]string{
		"username": "assistant",
		"email":    "other@example.com",
		"password": "S3cure-pass",
	})
	require.Equal(t, http.StatusBadRequest, duplicate.Code)
	require.Equal(t, "username or email already exists", detailOf(t, duplicate))

	admin, err := f.users.GetByUsername(t.Context(), "admin")
	require.NoError(t, err)

	selfDisable := f.do(t, http.MethodPut, "/api/admin/users/"+admin.ID, pair.AccessToken, map[string]any{
		"is_active": false,
	})
	require.Equal(t, http.StatusBadRequest, selfDisable.Code)
	require.Equal(t, "cannot disable your own account", detailOf(t, selfDisable))

	selfDelete := f.do(t, http.MethodDelete, "/api/admin/users/"+admin.ID, pair.AccessToken, nil)
	require.Equal(t, http.StatusBadRequest, selfDelete.Code)
	require.Equal(t, "cannot delete your own account", detailOf(t, selfDelete))

	weakPassword := f.do(t, http.MethodPost, "/api/admin/users", pair.AccessToken, map[string]string{
		"username": "weak",
		"email":    "weak@example.com",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, weakPassword.Code)
}

func TestUploadsNotConfigured(t *testing.T) {
	f := newTestFixture(t)
	pair := f.login(t, "admin", "admin123")

	rec := f.do(t, http.MethodPost, "/api/admin/uploads/presign", pair.AccessToken, map[string]string{
		"filename": "logo.png",
	})
	require.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	f := newTestFixture(t)

	rec := f.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "healthy", body["status"])
}
