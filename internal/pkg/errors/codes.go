package errors

import "net/http"

const (
	CodeInvalidInputData  = "INVALID_INPUT_DATA"
	CodeUnknownDistrict   = "UNKNOWN_DISTRICT"
	CodeSolverUnavailable = "SOLVER_UNAVAILABLE"
	CodeCatalogNotLoaded  = "CATALOG_NOT_LOADED"
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeDatabaseError     = "DATABASE_ERROR"
	CodeCacheError        = "CACHE_ERROR"
	CodeInternalServer    = "INTERNAL_SERVER_ERROR"
)

var (
	// ErrInvalidInputData - некорректные координаты, отрицательная стоимость/покрытие
	ErrInvalidInputData = New(
		CodeInvalidInputData,
		"Invalid input data",
		http.StatusBadRequest,
	)

	ErrUnknownDistrict = New(
		CodeUnknownDistrict,
		"Unknown district",
		http.StatusNotFound,
	)

	// ErrSolverUnavailable - бэкенд MILP отсутствует или сломан; не путать с infeasible
	ErrSolverUnavailable = New(
		CodeSolverUnavailable,
		"Optimization solver unavailable",
		http.StatusServiceUnavailable,
	)

	ErrCatalogNotLoaded = New(
		CodeCatalogNotLoaded,
		"Station catalog is not loaded",
		http.StatusServiceUnavailable,
	)

	ErrInvalidRequest = New(
		CodeInvalidRequest,
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		CodeDatabaseError,
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		CodeCacheError,
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		CodeInternalServer,
		"Internal server error",
		http.StatusInternalServerError,
	)
)
