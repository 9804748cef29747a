package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/warekit/warestock/internal/webserver"
)

func registerSnapshotRoutes() {
	webserver.ApiGET("/system/snapshots", listSnapshots)
	webserver.ApiPOST("/system/snapshots", saveSnapshot)
	webserver.ApiPOST("/system/snapshots/:key/restore", restoreSnapshot)
}

func listSnapshots(c echo.Context) error {
	entries, err := GetAppContext(c).ListSnapshots()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "ARCHIVE_ERROR", "Unable to list snapshots", err.Error())
	}
	return ok(c, entries)
}

func saveSnapshot(c echo.Context) error {
	key, err := GetAppContext(c).SaveSnapshot(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "ARCHIVE_ERROR", "Snapshot failed", err.Error())
	}
	return ok(c, map[string]string{"key": key})
}

// restoreSnapshot replaces the entire working data set with the archived
// snapshot under key. Destructive, there is no undo beyond older snapshots.
func restoreSnapshot(c echo.Context) error {
	if err := GetAppContext(c).RestoreSnapshot(c.Request().Context(), c.Param("key")); err != nil {
		return fail(c, http.StatusInternalServerError, "ARCHIVE_ERROR", "Restore failed", err.Error())
	}
	return ok(c, nil)
}
