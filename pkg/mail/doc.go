// Package mail renders and delivers transactional email: the welcome
// message, the movie-added confirmation, and the daily release reminder.
// Delivery is SMTP; local development targets MailHog on port 1025.
package mail
