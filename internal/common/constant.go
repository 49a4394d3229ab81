// Package common contains shared constants and sentinel errors used across
// launcher components.
package common

// AuthorizationHeaderName carries "bearer <token>" on every session request.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is matched case-insensitively.
const BearerScheme = "bearer"

// PermissionSafeDriveAccess grants an app access to the shared drive root.
const PermissionSafeDriveAccess = "SAFE_DRIVE_ACCESS"
