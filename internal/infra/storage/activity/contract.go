package activity

import "github.com/m04kA/SMC-ActivityBookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
