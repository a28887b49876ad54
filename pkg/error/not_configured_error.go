package error

import "net/http"

type NotConfiguredError string

func (err NotConfiguredError) Error() string {
	return string(err)
}

func (err NotConfiguredError) ErrCode() string {
	return "NOT_CONFIGURED"
}

func (err NotConfiguredError) StatusCode() int {
	return http.StatusServiceUnavailable
}
