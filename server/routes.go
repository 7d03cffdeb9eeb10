package server

import "net/http"

func (s *Server) initRoutes() {
	api := s.APIMiddleware()
	protected := s.APIMiddleware(s.RequireAuth())

	// Public site routes
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteTherapies, ChainMiddleware(s.TherapiesListHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteTherapyByID, ChainMiddleware(s.TherapyGetHandler(), api...))
	s.RegisterRouteHandler("GET "+RoutePrices, ChainMiddleware(s.PricesListHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteAffiliations, ChainMiddleware(s.AffiliationsListHandler(), api...))
	s.RegisterRouteHandler("GET "+RoutePolicies, ChainMiddleware(s.PoliciesListHandler(), api...))
	s.RegisterRouteHandler("GET "+RoutePolicyBySlug, ChainMiddleware(s.PolicyGetBySlugHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteSettings, ChainMiddleware(s.SettingsGetHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteContact, ChainMiddleware(s.ContactSubmitHandler(), api...))

	// Auth routes; login and refresh are the unauthenticated entry points
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteAuthRefresh, ChainMiddleware(s.RefreshHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteAuthMe, ChainMiddleware(s.MeHandler(), protected...))

	// Admin user management
	s.RegisterRouteHandler("GET "+RouteAdminUsers, ChainMiddleware(s.AdminUsersListHandler(), protected...))
	s.RegisterRouteHandler("POST "+RouteAdminUsers, ChainMiddleware(s.AdminUserCreateHandler(), protected...))
	s.RegisterRouteHandler("GET "+RouteAdminUserByID, ChainMiddleware(s.AdminUserGetHandler(), protected...))
	s.RegisterRouteHandler("PUT "+RouteAdminUserByID, ChainMiddleware(s.AdminUserUpdateHandler(), protected...))
	s.RegisterRouteHandler("DELETE "+RouteAdminUserByID, ChainMiddleware(s.AdminUserDeleteHandler(), protected...))

	// Admin site content
	s.RegisterRouteHandler("GET "+RouteAdminTherapies, ChainMiddleware(s.TherapiesListHandler(), protected...))
	s.RegisterRouteHandler("POST "+RouteAdminTherapies, ChainMiddleware(s.TherapyCreateHandler(), protected...))
	s.RegisterRouteHandler("PUT "+RouteAdminTherapyByID, ChainMiddleware(s.TherapyUpdateHandler(), protected...))
	s.RegisterRouteHandler("DELETE "+RouteAdminTherapyByID, ChainMiddleware(s.TherapyDeleteHandler(), protected...))

	s.RegisterRouteHandler("GET "+RouteAdminPrices, ChainMiddleware(s.PricesListHandler(), protected...))
	s.RegisterRouteHandler("POST "+RouteAdminPrices, ChainMiddleware(s.PriceCreateHandler(), protected...))
	s.RegisterRouteHandler("PUT "+RouteAdminPriceByID, ChainMiddleware(s.PriceUpdateHandler(), protected...))
	s.RegisterRouteHandler("DELETE "+RouteAdminPriceByID, ChainMiddleware(s.PriceDeleteHandler(), protected...))

	s.RegisterRouteHandler("GET "+RouteAdminAffiliations, ChainMiddleware(s.AffiliationsListHandler(), protected...))
	s.RegisterRouteHandler("POST "+RouteAdminAffiliations, ChainMiddleware(s.AffiliationCreateHandler(), protected...))
	s.RegisterRouteHandler("PUT "+RouteAdminAffiliationByID, ChainMiddleware(s.AffiliationUpdateHandler(), protected...))
	s.RegisterRouteHandler("DELETE "+RouteAdminAffiliationByID, ChainMiddleware(s.AffiliationDeleteHandler(), protected...))

	s.RegisterRouteHandler("GET "+RouteAdminPolicies, ChainMiddleware(s.PoliciesListHandler(), protected...))
	s.RegisterRouteHandler("POST "+RouteAdminPolicies, ChainMiddleware(s.PolicyCreateHandler(), protected...))
	s.RegisterRouteHandler("PUT "+RouteAdminPolicyByID, ChainMiddleware(s.PolicyUpdateHandler(), protected...))
	s.RegisterRouteHandler("DELETE "+RouteAdminPolicyByID, ChainMiddleware(s.PolicyDeleteHandler(), protected...))

	s.RegisterRouteHandler("PUT "+RouteAdminSettings, ChainMiddleware(s.SettingsUpdateHandler(), protected...))

	// Contact submissions
	s.RegisterRouteHandler("GET "+RouteAdminContacts, ChainMiddleware(s.ContactsListHandler(), protected...))
	s.RegisterRouteHandler("GET "+RouteAdminContactByID, ChainMiddleware(s.ContactGetHandler(), protected...))
	s.RegisterRouteHandler("PUT "+RouteAdminContactRead, ChainMiddleware(s.ContactMarkReadHandler(), protected...))
	s.RegisterRouteHandler("PUT "+RouteAdminContactNotes, ChainMiddleware(s.ContactUpdateNotesHandler(), protected...))
	s.RegisterRouteHandler("DELETE "+RouteAdminContactByID, ChainMiddleware(s.ContactDeleteHandler(), protected...))

	// Clients and session notes
	s.RegisterRouteHandler("GET "+RouteAdminClients, ChainMiddleware(s.ClientsListHandler(), protected...))
	s.RegisterRouteHandler("POST "+RouteAdminClients, ChainMiddleware(s.ClientCreateHandler(), protected...))
	s.RegisterRouteHandler("GET "+RouteAdminClientByID, ChainMiddleware(s.ClientGetHandler(), protected...))
	s.RegisterRouteHandler("PUT "+RouteAdminClientByID, ChainMiddleware(s.ClientUpdateHandler(), protected...))
	s.RegisterRouteHandler("DELETE "+RouteAdminClientByID, ChainMiddleware(s.ClientDeleteHandler(), protected...))
	s.RegisterRouteHandler("GET "+RouteAdminClientNotes, ChainMiddleware(s.ClientNotesListHandler(), protected...))
	s.RegisterRouteHandler("POST "+RouteAdminClientNotes, ChainMiddleware(s.ClientNoteCreateHandler(), protected...))
	s.RegisterRouteHandler("PUT "+RouteAdminClientNoteByID, ChainMiddleware(s.ClientNoteUpdateHandler(), protected...))
	s.RegisterRouteHandler("DELETE "+RouteAdminClientNoteByID, ChainMiddleware(s.ClientNoteDeleteHandler(), protected...))

	// Uploads
	s.RegisterRouteHandler("POST "+RouteAdminUploadsPresign, ChainMiddleware(s.UploadPresignHandler(), protected...))

	// Preflight requests for any API path terminate in the CORS middleware
	s.RegisterRouteHandler("OPTIONS /api/", ChainMiddleware(s.preflightHandler(), api...))
}

func (s *Server) preflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}
