// Package poller fetches Jikan resources on cron schedules.
//
// Jobs come from the poller section of the configuration:
//
//	poller:
//	  jobs:
//	    - name: monday-schedule
//	      schedule: "0 * * * *"
//	      endpoint: schedules
//	      day: monday
//
// Every run goes through the same client, and so the same rate limiter, as
// interactive commands. SetJobs can be called again with a reloaded
// configuration; unchanged jobs keep their schedule.
package poller
