// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"net/http"

	"cadastre/internal/delivery/api/middleware"
	"cadastre/internal/delivery/api/router/handler"
	"cadastre/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// partialUpdate lists the methods accepted by update routes; only present fields change.
var partialUpdate = []string{http.MethodPut, http.MethodPatch}

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	RoleHandler     *handler.RoleHandler
	LocationHandler *handler.LocationHandler
	LookupHandler   *handler.LookupHandler
	PersonHandler   *handler.PersonHandler
	PropertyHandler *handler.PropertyHandler
	PaymentHandler  *handler.PaymentHandler
	PolicyHandler   *handler.PolicyHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	userHandler     *handler.UserHandler
	roleHandler     *handler.RoleHandler
	locationHandler *handler.LocationHandler
	lookupHandler   *handler.LookupHandler
	personHandler   *handler.PersonHandler
	propertyHandler *handler.PropertyHandler
	paymentHandler  *handler.PaymentHandler
	policyHandler   *handler.PolicyHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		userHandler:     params.UserHandler,
		roleHandler:     params.RoleHandler,
		locationHandler: params.LocationHandler,
		lookupHandler:   params.LookupHandler,
		personHandler:   params.PersonHandler,
		propertyHandler: params.PropertyHandler,
		paymentHandler:  params.PaymentHandler,
		policyHandler:   params.PolicyHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.RefreshToken)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	// API v1 routes
	apiV1 := e.Group("/api/v1")
	apiV1.Use(r.authMiddleware.Authenticate) // All API v1 routes require authentication

	apiV1.GET("/me", r.authHandler.Me)

	perm := r.authMiddleware.RequirePermission
	usersRead, usersWrite := perm(entity.PermUsersRead), perm(entity.PermUsersWrite)
	rolesManage := perm(entity.PermRolesManage)
	lookupsWrite := perm(entity.PermLookupsWrite)
	personsRead, personsWrite := perm(entity.PermPersonsRead), perm(entity.PermPersonsWrite)
	propertiesRead, propertiesWrite := perm(entity.PermPropertiesRead), perm(entity.PermPropertiesWrite)
	propertiesApprove := perm(entity.PermPropertiesApprove)
	paymentsRead, paymentsWrite := perm(entity.PermPaymentsRead), perm(entity.PermPaymentsWrite)
	paymentsCollect := perm(entity.PermPaymentsCollect)
	policiesManage := perm(entity.PermPoliciesManage)
	reportsRead := perm(entity.PermReportsRead)

	// Staff accounts
	usersGroup := apiV1.Group("/users")
	{
		usersGroup.GET("", r.userHandler.ListUsers, usersRead)
		usersGroup.GET("/:id", r.userHandler.GetUser, usersRead)
		usersGroup.POST("", r.userHandler.CreateUser, usersWrite)
		usersGroup.Match(partialUpdate, "/:id", r.userHandler.UpdateUser, usersWrite)
		usersGroup.PUT("/:id/roles", r.userHandler.ReplaceUserRoles, usersWrite, rolesManage)
	}

	rolesGroup := apiV1.Group("/roles", rolesManage)
	{
		rolesGroup.GET("", r.roleHandler.ListRoles)
		rolesGroup.GET("/:id", r.roleHandler.GetRole)
		rolesGroup.POST("", r.roleHandler.CreateRole)
		rolesGroup.Match(partialUpdate, "/:id", r.roleHandler.UpdateRole)
		rolesGroup.DELETE("/:id", r.roleHandler.DeleteRole)
		rolesGroup.PUT("/:id/permissions", r.roleHandler.ReplaceRolePermissions)
	}

	permissionsGroup := apiV1.Group("/permissions", rolesManage)
	{
		permissionsGroup.GET("", r.roleHandler.ListPermissions)
		permissionsGroup.GET("/:id", r.roleHandler.GetPermission)
		permissionsGroup.POST("", r.roleHandler.CreatePermission)
		permissionsGroup.Match(partialUpdate, "/:id", r.roleHandler.UpdatePermission)
		permissionsGroup.DELETE("/:id", r.roleHandler.DeletePermission)
	}

	// Location hierarchy; readable by every authenticated user
	regionsGroup := apiV1.Group("/regions")
	{
		regionsGroup.GET("", r.locationHandler.ListRegions)
		regionsGroup.GET("/:id", r.locationHandler.GetRegion)
		regionsGroup.POST("", r.locationHandler.CreateRegion, lookupsWrite)
		regionsGroup.Match(partialUpdate, "/:id", r.locationHandler.UpdateRegion, lookupsWrite)
	}

	citiesGroup := apiV1.Group("/cities")
	{
		citiesGroup.GET("", r.locationHandler.ListCities)
		citiesGroup.GET("/:id", r.locationHandler.GetCity)
		citiesGroup.POST("", r.locationHandler.CreateCity, lookupsWrite)
		citiesGroup.Match(partialUpdate, "/:id", r.locationHandler.UpdateCity, lookupsWrite)
	}

	sectionsGroup := apiV1.Group("/sections")
	{
		sectionsGroup.GET("", r.locationHandler.ListSections)
		sectionsGroup.GET("/:id", r.locationHandler.GetSection)
		sectionsGroup.POST("", r.locationHandler.CreateSection, lookupsWrite)
		sectionsGroup.Match(partialUpdate, "/:id", r.locationHandler.UpdateSection, lookupsWrite)
		sectionsGroup.DELETE("/:id", r.locationHandler.DeleteSection, lookupsWrite)
	}

	subSectionsGroup := apiV1.Group("/sub-sections")
	{
		subSectionsGroup.GET("", r.locationHandler.ListSubSections)
		subSectionsGroup.GET("/:id", r.locationHandler.GetSubSection)
		subSectionsGroup.POST("", r.locationHandler.CreateSubSection, lookupsWrite)
		subSectionsGroup.Match(partialUpdate, "/:id", r.locationHandler.UpdateSubSection, lookupsWrite)
		subSectionsGroup.DELETE("/:id", r.locationHandler.DeleteSubSection, lookupsWrite)
	}

	// Lookup tables
	propertyTypesGroup := apiV1.Group("/property-types")
	{
		propertyTypesGroup.GET("", r.lookupHandler.ListPropertyTypes)
		propertyTypesGroup.GET("/:id", r.lookupHandler.GetPropertyType)
		propertyTypesGroup.POST("", r.lookupHandler.CreatePropertyType, lookupsWrite)
		propertyTypesGroup.Match(partialUpdate, "/:id", r.lookupHandler.UpdatePropertyType, lookupsWrite)
	}

	for path, kind := range map[string]entity.LookupKind{
		"/property-statuses": entity.LookupPropertyStatus,
		"/payment-methods":   entity.LookupPaymentMethod,
		"/payment-statuses":  entity.LookupPaymentStatus,
	} {
		group := apiV1.Group(path)
		group.GET("", r.lookupHandler.ListLookups(kind))
		group.GET("/:id", r.lookupHandler.GetLookup(kind))
		group.POST("", r.lookupHandler.CreateLookup(kind), lookupsWrite)
		group.Match(partialUpdate, "/:id", r.lookupHandler.UpdateLookup(kind), lookupsWrite)
	}

	// Owners and responsible persons
	ownersGroup := apiV1.Group("/owners")
	{
		ownersGroup.GET("", r.personHandler.ListOwners, personsRead)
		ownersGroup.GET("/:id", r.personHandler.GetOwner, personsRead)
		ownersGroup.POST("", r.personHandler.CreateOwner, personsWrite)
		ownersGroup.Match(partialUpdate, "/:id", r.personHandler.UpdateOwner, personsWrite)
		ownersGroup.DELETE("/:id", r.personHandler.DeleteOwner, personsWrite)
	}

	responsibleGroup := apiV1.Group("/responsible-persons")
	{
		responsibleGroup.GET("", r.personHandler.ListResponsiblePersons, personsRead)
		responsibleGroup.GET("/:id", r.personHandler.GetResponsiblePerson, personsRead)
		responsibleGroup.POST("", r.personHandler.CreateResponsiblePerson, personsWrite)
		responsibleGroup.Match(partialUpdate, "/:id", r.personHandler.UpdateResponsiblePerson, personsWrite)
		responsibleGroup.DELETE("/:id", r.personHandler.DeleteResponsiblePerson, personsWrite)
	}

	// Properties
	propertiesGroup := apiV1.Group("/properties")
	{
		propertiesGroup.GET("", r.propertyHandler.ListProperties, propertiesRead)
		propertiesGroup.GET("/geojson", r.propertyHandler.GeoJSON, propertiesRead)
		propertiesGroup.POST("/verify-certificate", r.propertyHandler.VerifyCertificate, propertiesRead)
		propertiesGroup.GET("/:id", r.propertyHandler.GetProperty, propertiesRead)
		propertiesGroup.POST("", r.propertyHandler.CreateProperty, propertiesWrite)
		propertiesGroup.Match(partialUpdate, "/:id", r.propertyHandler.UpdateProperty, propertiesWrite)
		propertiesGroup.POST("/:id/approve", r.propertyHandler.ApproveProperty, propertiesApprove)
		propertiesGroup.GET("/:id/balance", r.propertyHandler.GetBalance, propertiesRead, paymentsRead)
		propertiesGroup.GET("/:id/qrcode", r.propertyHandler.QRCode, propertiesRead)

		propertiesGroup.PUT("/:id/photo", r.propertyHandler.UploadPhoto, propertiesWrite)
		propertiesGroup.GET("/:id/photo", r.propertyHandler.GetPhoto, propertiesRead)
		propertiesGroup.DELETE("/:id/photo", r.propertyHandler.DeletePhoto, propertiesWrite)

		propertiesGroup.GET("/:id/payments", r.propertyHandler.ListPayments, paymentsRead)
		propertiesGroup.POST("/:id/yearly-payment", r.propertyHandler.CreateYearlyPayment, paymentsWrite)
		propertiesGroup.GET("/:id/payment-details", r.propertyHandler.ListPaymentDetails, paymentsRead)
	}

	// Billing and collection
	paymentsGroup := apiV1.Group("/payments")
	{
		paymentsGroup.GET("", r.paymentHandler.ListPayments, paymentsRead)
		paymentsGroup.GET("/:id", r.paymentHandler.GetPayment, paymentsRead)
		paymentsGroup.POST("", r.paymentHandler.CreatePayment, paymentsWrite)
		paymentsGroup.Match(partialUpdate, "/:id", r.paymentHandler.UpdatePayment, paymentsWrite)
		paymentsGroup.GET("/:id/details", r.paymentHandler.ListPaymentInstallments, paymentsRead)
	}

	paymentDetailsGroup := apiV1.Group("/payment-details")
	{
		paymentDetailsGroup.GET("", r.paymentHandler.ListPaymentDetails, paymentsRead)
		paymentDetailsGroup.GET("/:id", r.paymentHandler.GetPaymentDetail, paymentsRead)
		paymentDetailsGroup.POST("", r.paymentHandler.RecordPaymentDetail, paymentsCollect)
	}

	// Policies and reports
	policiesGroup := apiV1.Group("/policies", policiesManage)
	{
		policiesGroup.GET("/commission", r.policyHandler.ListCommissionPolicies)
		policiesGroup.GET("/commission/active", r.policyHandler.ActiveCommissionPolicy)
		policiesGroup.GET("/commission/:id", r.policyHandler.GetCommissionPolicy)
		policiesGroup.POST("/commission", r.policyHandler.CreateCommissionPolicy)
		policiesGroup.Match(partialUpdate, "/commission/:id", r.policyHandler.UpdateCommissionPolicy)

		policiesGroup.GET("/revenue-split", r.policyHandler.ListRevenueSplitPolicies)
		policiesGroup.GET("/revenue-split/active", r.policyHandler.ActiveRevenueSplitPolicy)
		policiesGroup.GET("/revenue-split/:id", r.policyHandler.GetRevenueSplitPolicy)
		policiesGroup.POST("/revenue-split", r.policyHandler.CreateRevenueSplitPolicy)
		policiesGroup.Match(partialUpdate, "/revenue-split/:id", r.policyHandler.UpdateRevenueSplitPolicy)
	}

	reportsGroup := apiV1.Group("/reports", reportsRead)
	{
		reportsGroup.GET("/collections", r.policyHandler.CollectionReport)
		reportsGroup.GET("/summary", r.policyHandler.Summary)
	}
}
