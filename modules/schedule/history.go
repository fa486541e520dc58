package schedule

import (
	"time"

	"github.com/Aodaruma/asg-discordbot/api/database"
	"github.com/Aodaruma/asg-discordbot/api/logger"
	"gorm.io/gorm"
)

// ScheduleRecord archives one finished vote. The archive is write-only
// history; active sessions live in memory only and are never restored from
// the database.
type ScheduleRecord struct {
	gorm.Model
	GuildID     string `gorm:"index"`
	MessageID   string `gorm:"index:,unique"`
	EventNumber int
	EventDate   time.Time
	Votes       int
	Candidates  int
	EventURL    string
}

func archiveRecord(sess *Session, res TallyResult, url string) {
	db, err := database.Get()
	if err != nil {
		logger.Err().Printf("Error getting DB connection: %s\n", err.Error())
		return
	}

	record := &ScheduleRecord{
		GuildID:     sess.GuildID,
		MessageID:   sess.MessageID,
		EventNumber: sess.EventNumber,
		EventDate:   sess.Dates[res.Winner],
		Votes:       res.Counts[res.Winner],
		Candidates:  len(sess.Dates),
		EventURL:    url,
	}
	if err := db.Create(record).Error; err != nil {
		logger.Err().Printf("Error archiving schedule record for message %s: %s\n", sess.MessageID, err.Error())
	}
}
