package specification

import "gorm.io/gorm"

// ByOwnerEmail filters conversation summaries by their owner
type ByOwnerEmail struct {
	OwnerEmail string
}

func (s ByOwnerEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_email = ?", s.OwnerEmail)
}

// ByRoomID filters by derived room id
type ByRoomID struct {
	RoomID string
}

func (s ByRoomID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("room_id = ?", s.RoomID)
}

// AfterSeq keeps messages appended strictly after the given sequence number
type AfterSeq struct {
	Seq int64
}

func (s AfterSeq) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("seq > ?", s.Seq)
}
