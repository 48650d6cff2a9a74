package streak

// FreeDailyMissionCap limits how many missions a non-paying account may
// start per civil day. Paying accounts are uncapped.
const FreeDailyMissionCap = 3

// CanStartMission reports whether another mission may start today. The
// calling layer checks this before touching the ledger; the ledger itself
// never re-checks.
func CanStartMission(completedToday int, premium bool) bool {
	if premium {
		return true
	}
	return completedToday < FreeDailyMissionCap
}
