// Package files provides file system discovery utilities for locating
// grade workbooks.
//
// Discovery finds Excel files and files matching glob patterns inside a
// base directory. Grade workbooks carry their term in the file name
// (student_grades_2024_01.xlsx), so selection of the current workbook is
// done by name order rather than modification time.
//
// Example usage:
//
//	// Create a discovery instance
//	discovery := files.NewDiscovery("/path/to/base")
//
//	// Find grade workbooks sorted by name
//	workbooks, err := discovery.FindGradeWorkbooks("data", "student_grades_*.xlsx")
//
//	// Pick the most recent export
//	latest, ok := files.LatestByName(workbooks)
package files
