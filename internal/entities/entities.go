package entities

import "time"

type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleMember UserRole = "member"
)

// User is the identity record referenced by reviews and votes. IDs are opaque
// strings assigned once at creation; the catalog code never creates or
// mutates users, only the auth layer does.
type User struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	TokenHash    string    `gorm:"index;size:64" json:"-"` // API token hash, hidden from JSON
	Role         UserRole  `gorm:"size:20" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Book owns its reviews. The (title, author) pair is unique; the index backs
// the duplicate check done in the book service.
type Book struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null;size:100;uniqueIndex:idx_books_title_author" json:"title"`
	Author        string    `gorm:"not null;size:100;uniqueIndex:idx_books_title_author" json:"author"`
	Genre         string    `gorm:"not null;size:50;index" json:"genre"`
	PublishedYear int       `gorm:"not null" json:"published_year"`
	Reviews       []Review  `gorm:"foreignKey:BookID" json:"reviews,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Review belongs to exactly one book and one user. DateCreated is assigned by
// the server on create and never overwritten on update.
type Review struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Content     string       `gorm:"not null;size:1000" json:"content"`
	Rating      int          `gorm:"not null" json:"rating"`
	DateCreated time.Time    `gorm:"not null" json:"date_created"`
	BookID      uint         `gorm:"not null;index" json:"book_id"`
	Book        *Book        `gorm:"foreignKey:BookID" json:"book,omitempty"`
	UserID      string       `gorm:"not null;size:64;index" json:"user_id"`
	User        *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Votes       []ReviewVote `gorm:"foreignKey:ReviewID" json:"votes,omitempty"`
}

// ReviewVote records one user's up/down vote on a review. The composite
// unique index keeps the pair to at most one row even under concurrent
// writers; the service-level read-then-write is only an optimization on top.
type ReviewVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ReviewID  uint      `gorm:"not null;uniqueIndex:idx_review_votes_review_user" json:"review_id"`
	UserID    string    `gorm:"not null;size:64;uniqueIndex:idx_review_votes_review_user" json:"user_id"`
	IsUpvote  bool      `gorm:"not null" json:"is_upvote"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
