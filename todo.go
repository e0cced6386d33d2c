/*
	Project: Classbook - a single-teacher classroom notebook
	Target: one homeroom teacher, one class, one machine (storage never leaves it)
*/
package classbook

/*
TODO: admin: import the roster from an .xlsx sheet (excelize already reads them in the report tests)
TODO: report: bold header row & frozen first row in the .xlsx export

UI: the loopback API (apps/api) serves everything the browser page needs
	- Calendar: one dot per day; attendance | assignment | counseling modes
	- Daily views: attendance, assignments due, counseling notes
	- Roster: continuous add (next number pre-filled)
	- Report: CSV (Excel friendly: BOM + quoted fields) | XLSX
*/
