package util

import (
	"errors"
	u "net/url"
)

func GetDomain(url string) (string, error) {
	parsedUrl, err := u.Parse(url)
	if err != nil {
		return "", err
	}
	if parsedUrl.Hostname() == "" {
		return "", errors.New("invalid url. Url should contain scheme and hostname")
	}

	return parsedUrl.Hostname(), nil
}

// GetBaseUrl keeps the port, robots.txt is served per scheme and authority.
func GetBaseUrl(url string) (string, error) {
	parsedUrl, err := u.Parse(url)
	if err != nil {
		return "", err
	}
	if parsedUrl.Scheme == "" || parsedUrl.Host == "" {
		return "", errors.New("invalid url. Url should contain scheme and hostname")
	}

	return parsedUrl.Scheme + "://" + parsedUrl.Host, nil
}

func GetRobotsUrl(url string) (string, error) {
	baseUrl, err := GetBaseUrl(url)
	if err != nil {
		return "", err
	}

	return baseUrl + "/robots.txt", nil
}

func IsValidUrl(url string) bool {
	parsedUrl, err := u.Parse(url)
	if err != nil {
		return false
	}

	return (parsedUrl.Scheme == "http" || parsedUrl.Scheme == "https") && parsedUrl.Host != ""
}
