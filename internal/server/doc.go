// Package server is the thin REST layer over the review pipeline. It exposes
// health and review endpoints and owns request validation; everything else
// is delegated to the reviewer.
package server
