package notificationlog

import "github.com/gleamnails/GN-BookingService/pkg/dbexec"

// Reuse the shared executor interfaces so the repository works against
// *sql.DB, the dbmetrics wrapper, or an open transaction from the context.
type DBExecutor = dbexec.DBExecutor
type TxExecutor = dbexec.TxExecutor
