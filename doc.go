// Package returns estimates the personal, time-weighted annualized return of a brokerage
// account.
//
// It combines two local data sources:
//   - Statement balances: the starting and ending balance printed on each monthly
//     statement (see the statement package).
//   - Cash movements: the deposits and withdrawals recorded in the account activity
//     exports (see the activity package).
//
// For a month range, the Calculator builds a cashflow schedule anchored on business days
// (Monday to Friday, no holiday calendar): the starting balance on the first business day
// of the first month, then every movement settled until the last business day of the last
// month. It then solves for the rate r such that
//
//	sum(amount * (1+r)^(days/252)) == ending balance
//
// where days is the number of business days from the entry to the end of the range.
//
// This package serves as the foundational logic for the `nret` command-line tool.
package returns
