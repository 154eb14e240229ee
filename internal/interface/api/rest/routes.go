package rest

const (
	// api
	RouteApi = "/api"

	// auth
	RouteLogin  = RouteApi + "/login/"
	RouteLogout = RouteApi + "/logout/"

	RoutePeople       = RouteApi + "/person/"
	RoutePerson       = RoutePeople + ":person_id/"
	RouteFilterPeople = RoutePeople + "filter-people/"

	RouteRoles = RouteApi + "/role/"
	RouteRole  = RouteRoles + ":role_id/"

	// ops
	RouteHealth  = RouteApi + "/healthz"
	RouteMetrics = RouteApi + "/metrics"
)
