// Package notification models what a dispatch pass writes: one Broadcast audit
// row per offered helper and push Notifications for helpers and the requester.
package notification
