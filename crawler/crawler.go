package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/uvceed/pulse-api/geo"
	"github.com/uvceed/pulse-api/ingest"
	"github.com/uvceed/pulse-api/schema"
	"github.com/uvceed/pulse-api/store"
)

type refreshCrawler struct {
	pulse    store.PulseCore
	resolver geo.ZipResolver
	ingestor *ingest.Ingestor
}

// Run re-ingests every signal for the ZIPs clients asked about recently. A
// held advisory lock or a failed upstream fetch skips that pair and moves on.
func (c refreshCrawler) Run() {
	zips, err := c.pulse.ListRecentZips(recentZipDays)
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "error": err}).Error("list requested zips")
		return
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "zips": len(zips)}).Info("refreshing requested zips")

	for _, zip := range zips {
		g, err := c.resolver.Resolve(zip)
		if err != nil {
			log.WithFields(log.Fields{"prefix": logPrefix, "zip": zip, "error": err}).Error("resolve zip")
			continue
		}

		for _, signal := range schema.SignalTypes {
			c.refresh(g, signal)
		}
	}
}

func (c refreshCrawler) refresh(g *schema.Geo, signal schema.SignalType) {
	acquired, err := c.pulse.AcquireRefreshLock(g.ZipCode, signal)
	if err != nil {
		log.WithFields(log.Fields{"prefix": logPrefix, "zip": g.ZipCode, "error": err}).Error("acquire refresh lock")
		return
	}
	if !acquired {
		log.WithFields(log.Fields{"prefix": logPrefix, "zip": g.ZipCode, "signal": signal}).Info("refresh already in progress")
		return
	}
	defer func() {
		if err := c.pulse.ReleaseRefreshLock(g.ZipCode, signal); err != nil {
			log.WithFields(log.Fields{"prefix": logPrefix, "zip": g.ZipCode, "error": err}).Error("release refresh lock")
		}
	}()

	if _, err := c.ingestor.Refresh(g, signal); err != nil {
		log.WithFields(log.Fields{"prefix": logPrefix, "zip": g.ZipCode, "signal": signal, "error": err}).Error("refresh signal")
	}
}

// newRefreshCrawler - new cron job re-ingesting recently requested ZIPs
func newRefreshCrawler(pulse store.PulseCore, resolver geo.ZipResolver, ingestor *ingest.Ingestor) Cron {
	return &refreshCrawler{
		pulse:    pulse,
		resolver: resolver,
		ingestor: ingestor,
	}
}
