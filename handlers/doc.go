// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers for the lucky-draw API.

Handlers stay thin: they decode the request, resolve the caller's
identity, call into the draws service, and translate service errors
into response statuses via writeDomainError. All business rules live
in the draws package.

Admin-only endpoints are grouped under /admin and enforce the admin
role from the forwarded identity headers; public draw browsing needs
no identity at all.
*/
package handlers
