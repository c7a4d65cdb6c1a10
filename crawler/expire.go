package main

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/uvceed/pulse-api/store"
)

type expireCrawler struct {
	pulse store.PulseCore
	days  int
}

// Run drops snapshots older than the retention horizon.
func (c expireCrawler) Run() {
	before := time.Now().UTC().AddDate(0, 0, -c.days)
	expired, err := c.pulse.ExpireSnapshots(before)
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "error": err}).Error("expire snapshots")
		return
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "expired": expired, "before": before}).Info("expired old snapshots")
}

// newExpireCrawler - new cron job enforcing snapshot retention
func newExpireCrawler(pulse store.PulseCore, days int) Cron {
	return &expireCrawler{
		pulse: pulse,
		days:  days,
	}
}
