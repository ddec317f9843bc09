// Package api implements the HTTP REST API for shiperd.
//
// This package provides:
//   - CRUD endpoints for pilots, ships, ship classes, weapon classes and
//     mounted ship weapons, with query-string search on list routes
//   - Registration and login returning HS256 bearer tokens
//   - Middleware stack (request ID, logging, metrics, recovery, CORS,
//     body limit, request timeout)
//   - JSON or XML rendering of every response, chosen by ?format=xml
//
// # Envelope
//
// Every response body carries status ("success" or "error") and message,
// plus endpoint payload keys:
//
//	{"status": "success", "message": "Pilots retrieved successfully", "count": 1, "pilots": [...]}
//
// # Security
//
// GET routes are public. POST, PUT and DELETE on fleet resources require
// "Authorization: Bearer <token>"; a missing, malformed, invalid or
// expired token yields 401.
package api
