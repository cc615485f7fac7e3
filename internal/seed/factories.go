// Package seed creates demo data for development and testing. The identity
// and content services keep separate databases, so the seeder writes to both.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DemoPassword is the password every seeded account gets, so any of them can
// be used to log in during development.
const DemoPassword = "Quill-Demo-Pass-1!"

// Factory builds domain entities and persists them. It is a thin helper used
// by the seeder and by tests.
type Factory struct {
	identityDB *gorm.DB
	contentDB  *gorm.DB
	rng        *rand.Rand
	dryRun     bool
	// synthetic ID counter when running in dry-run mode
	nextID uint
}

// NewFactory creates a Factory bound to the two service databases.
func NewFactory(identityDB, contentDB *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		identityDB: identityDB,
		contentDB:  contentDB,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		dryRun:     opts.DryRun,
		nextID:     1000,
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		Password:  string(hashed),
		ImageFile: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}

	if f.dryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s (no DB write)", user.Username)
		return user, nil
	}
	if err := f.identityDB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateFollow persists a follow edge. Duplicate edges are ignored.
func (f *Factory) CreateFollow(followerID, followedID uint) error {
	if followerID == followedID {
		return nil
	}
	if f.dryRun {
		return nil
	}
	follow := &models.Follow{FollowerID: followerID, FollowedID: followedID}
	return f.identityDB.Clauses(clause.OnConflict{DoNothing: true}).Create(follow).Error
}

// BuildPost constructs a post without persisting it. CreatedAt is spread over
// the past maxDays so seeded feeds look lived-in.
func (f *Factory) BuildPost(authorID uint, maxDays int, overrides ...func(*models.Post)) *models.Post {
	if maxDays <= 0 {
		maxDays = 90
	}

	post := &models.Post{
		Title:    gofakeit.Sentence(5),
		Content:  gofakeit.Paragraph(1, 3, 5, "\n"),
		AuthorID: authorID,
		Likes:    f.rng.Intn(40),
	}

	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	if f.dryRun {
		for _, p := range posts {
			f.nextID++
			p.ID = f.nextID
		}
		log.Printf("[dry-run] CreatePostsBatch: %d posts (no DB write)", len(posts))
		return nil
	}
	return f.contentDB.Create(&posts).Error
}

// CreateComment persists a comment dated after its post.
func (f *Factory) CreateComment(post *models.Post, authorID uint, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:    post.ID,
		AuthorID:  authorID,
		Text:      gofakeit.Sentence(f.rng.Intn(12) + 3),
		CreatedAt: post.CreatedAt.Add(time.Duration(f.rng.Intn(48)+1) * time.Hour),
	}
	for _, override := range overrides {
		override(comment)
	}

	if f.dryRun {
		f.nextID++
		comment.ID = f.nextID
		return comment, nil
	}
	if err := f.contentDB.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}
