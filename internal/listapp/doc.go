// Package listapp is the reference message-list application.
//
// It keeps a list of submitted messages in a single state actor and
// serves four routes:
//
//	GET  /submit      a form with a message field
//	POST /submit      adds the message in a "message=<value>" body
//	GET  /read/{n}    lists the stored messages
//	GET  /items.json  the stored messages as a JSON array
//
// Every other request falls through to the server's 404 fallback.
package listapp
