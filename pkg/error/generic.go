package error

// GenericError is implemented by every typed error in this package. The
// recovery middleware uses it to map panics to HTTP responses.
type GenericError interface {
	Error() string
	ErrCode() string
	StatusCode() int
}
