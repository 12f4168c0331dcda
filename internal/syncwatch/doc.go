// Package syncwatch follows a server-side collection sync to completion.
//
// The poller probes the sync status once per interval with a single probe in
// flight, fetches the finished snapshot when the server reports completion,
// and gives up on the first failed probe so a dead server does not leave the
// watch spinning. A file lock keeps concurrent clio processes from watching
// the same sync twice.
package syncwatch
