// Package view holds the per-user controllers behind the two screens.
//
// UploadView owns the upload state and the running reveal task. HistoryView
// owns the fetched document list. Controllers share no state with each other
// and every surface (web session, Telegram chat) gets its own instances.
package view
