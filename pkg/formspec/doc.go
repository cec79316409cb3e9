// Package formspec loads declarative form definitions from JSON or YAML
// files. Each file holds a "forms" map keyed by form id; every form lists its
// fields in order together with their kind (text, username, password, range,
// markdown), range bounds and extra rules. The package ships the login,
// profile and problem forms as embedded defaults; callers can overlay their
// own directory on top.
package formspec
