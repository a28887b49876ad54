package error

import "net/http"

type UnauthenticatedError string

func (err UnauthenticatedError) Error() string {
	return string(err)
}

func (err UnauthenticatedError) ErrCode() string {
	return "UNAUTHENTICATED"
}

func (err UnauthenticatedError) StatusCode() int {
	return http.StatusUnauthorized
}
