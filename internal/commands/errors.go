package commands

import (
	"fmt"
	"io"
	"net/http"

	"taskdeck/internal/api"
	"taskdeck/internal/exitcode"
)

// backendFail prints a backend failure and maps it to an exit code.
// An expired or cleared session becomes an auth error telling the user to log
// in again; everything else is a backend error.
func backendFail(errOut io.Writer, err error) int {
	if api.StatusOf(err) == http.StatusUnauthorized {
		fmt.Fprintln(errOut, "error: session expired (run: taskdeck login)")
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
