package model

import "strings"

type ContactLink struct {
	Channel string
	Label   string
	Href    string
}

// ContactHref turns a contact handle into a link for its channel. Values
// that already look like URLs are kept.
func ContactHref(channel, value string) string {
	if strings.Contains(value, "://") {
		return value
	}
	switch channel {
	case "email":
		return "mailto:" + value
	case "telegram":
		return "https://t.me/" + value
	case "twitter":
		return "https://www.twitter.com/" + value
	case "github":
		return "https://github.com/" + value
	case "vkontakte":
		return "https://vk.com/" + value
	default:
		return value
	}
}
