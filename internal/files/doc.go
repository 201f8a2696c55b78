// Package files finds dataset workbooks in a data directory.
//
// Discovery lists .xlsx files (temporary "~$" lock files excluded), tags each
// with the dataset kind its name suggests and the year it mentions, and
// picks the newest workbook per dataset:
//
//	discovery := files.NewDiscovery(paths.BaseDir)
//	workbooks, err := discovery.FindWorkbooks(paths.DataDir)
//	latest := files.LatestByKind(files.FilterByYear(workbooks, 2025))
package files
