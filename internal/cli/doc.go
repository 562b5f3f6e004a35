// Package cli implements the reviewd command line interface: reviewing a PR
// request file (or local git changes) and running the REST server.
package cli
