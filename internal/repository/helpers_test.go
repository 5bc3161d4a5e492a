package repository_test

import "time"

func nowPlusHour() time.Time { return time.Now().UTC().Add(time.Hour).Truncate(time.Second) }
