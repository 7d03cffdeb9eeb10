package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Public site routes
	RouteHealth       = "/api/health"
	RouteTherapies    = "/api/therapies"
	RouteTherapyByID  = "/api/therapies/{id}"
	RoutePrices       = "/api/prices"
	RouteAffiliations = "/api/affiliations"
	RoutePolicies     = "/api/policies"
	RoutePolicyBySlug = "/api/policies/slug/{slug}"
	RouteSettings     = "/api/settings"
	RouteContact      = "/api/contact"

	// Auth routes
	RouteAuthLogin   = "/api/admin/auth/login"
	RouteAuthRefresh = "/api/admin/auth/refresh"
	RouteAuthMe      = "/api/admin/auth/me"

	// Admin routes - users
	RouteAdminUsers    = "/api/admin/users"
	RouteAdminUserByID = "/api/admin/users/{id}"

	// Admin routes - site content
	RouteAdminTherapies       = "/api/admin/therapies"
	RouteAdminTherapyByID     = "/api/admin/therapies/{id}"
	RouteAdminPrices          = "/api/admin/prices"
	RouteAdminPriceByID       = "/api/admin/prices/{id}"
	RouteAdminAffiliations    = "/api/admin/affiliations"
	RouteAdminAffiliationByID = "/api/admin/affiliations/{id}"
	RouteAdminPolicies        = "/api/admin/policies"
	RouteAdminPolicyByID      = "/api/admin/policies/{id}"
	RouteAdminSettings        = "/api/admin/settings"

	// Admin routes - contact submissions
	RouteAdminContacts     = "/api/admin/contacts"
	RouteAdminContactByID  = "/api/admin/contacts/{id}"
	RouteAdminContactRead  = "/api/admin/contacts/{id}/read"
	RouteAdminContactNotes = "/api/admin/contacts/{id}/notes"

	// Admin routes - clients and session notes
	RouteAdminClients        = "/api/admin/clients"
	RouteAdminClientByID     = "/api/admin/clients/{id}"
	RouteAdminClientNotes    = "/api/admin/clients/{id}/notes"
	RouteAdminClientNoteByID = "/api/admin/clients/notes/{noteId}"

	// Admin routes - uploads
	RouteAdminUploadsPresign = "/api/admin/uploads/presign"
)
