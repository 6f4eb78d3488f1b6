package v1

// Version is the API version served under BasePath.
const Version = "v1"

// BasePath is the route prefix of all version 1 endpoints.
const BasePath = "/api/" + Version + "/sigvault"
