// Package reminder runs the daily sweep that emails users about movies in
// their collection released that day.
package reminder
