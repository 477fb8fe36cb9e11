package utils

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// IsNotFound reports whether a discordgo REST error means the resource
// no longer exists, as opposed to some other failure. A deleted message
// or a departed member is expected state, not an error.
func IsNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil &&
			(restErr.Message.Code == discordgo.ErrCodeUnknownMessage ||
				restErr.Message.Code == discordgo.ErrCodeUnknownMember ||
				restErr.Message.Code == discordgo.ErrCodeUnknownChannel) {
			return true
		}
		return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}

// IsForbidden reports whether the platform denied the operation for
// missing permissions.
func IsForbidden(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		return restErr.Response != nil && restErr.Response.StatusCode == http.StatusForbidden
	}
	return false
}
