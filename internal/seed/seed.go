package seed

import (
	"fmt"
	"log"

	"quill/internal/models"

	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	DryRun      bool
	MaxDays     int
}

// Seeder populates both service databases with a connected demo dataset:
// users, a follow mesh, posts, and comments.
type Seeder struct {
	identityDB *gorm.DB
	contentDB  *gorm.DB
	opts       Options
	factory    *Factory
}

// NewSeeder creates a Seeder over the two service databases.
func NewSeeder(identityDB, contentDB *gorm.DB, opts Options) *Seeder {
	return &Seeder{
		identityDB: identityDB,
		contentDB:  contentDB,
		opts:       opts,
		factory:    NewFactory(identityDB, contentDB, opts),
	}
}

// ClearAll wipes seeded data from both databases. Deletion order respects
// foreign keys: comments before posts, follows before users.
func (s *Seeder) ClearAll() error {
	if s.opts.DryRun {
		log.Println("[dry-run] ClearAll: skipped")
		return nil
	}

	if err := s.contentDB.Exec("DELETE FROM comments").Error; err != nil {
		return fmt.Errorf("clearing comments: %w", err)
	}
	if err := s.contentDB.Exec("DELETE FROM posts").Error; err != nil {
		return fmt.Errorf("clearing posts: %w", err)
	}
	if err := s.identityDB.Exec("DELETE FROM follows").Error; err != nil {
		return fmt.Errorf("clearing follows: %w", err)
	}
	if err := s.identityDB.Exec("DELETE FROM users").Error; err != nil {
		return fmt.Errorf("clearing users: %w", err)
	}
	return nil
}

// Run seeds the full dataset and returns the created users.
func (s *Seeder) Run() ([]*models.User, error) {
	users, err := s.seedUsers()
	if err != nil {
		return nil, err
	}
	if err := s.seedFollowMesh(users); err != nil {
		return nil, err
	}
	posts, err := s.seedPosts(users)
	if err != nil {
		return nil, err
	}
	if err := s.seedComments(users, posts); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Seeder) seedUsers() ([]*models.User, error) {
	n := s.opts.NumUsers
	if n <= 0 {
		n = 50
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("creating user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users (password %q)", len(users), DemoPassword)
	return users, nil
}

// seedFollowMesh connects every user to a random handful of others so
// seeded feeds have content from several authors.
func (s *Seeder) seedFollowMesh(users []*models.User) error {
	if len(users) < 2 {
		return nil
	}

	rng := s.factory.rng
	edges := 0
	for _, follower := range users {
		count := rng.Intn(len(users)/2) + 1
		for i := 0; i < count; i++ {
			target := users[rng.Intn(len(users))]
			if target.ID == follower.ID {
				continue
			}
			if err := s.factory.CreateFollow(follower.ID, target.ID); err != nil {
				return fmt.Errorf("creating follow %d -> %d: %w", follower.ID, target.ID, err)
			}
			edges++
		}
	}
	log.Printf("Seeded %d follow edges", edges)
	return nil
}

func (s *Seeder) seedPosts(users []*models.User) ([]*models.Post, error) {
	n := s.opts.NumPosts
	if n <= 0 {
		n = 200
	}

	rng := s.factory.rng
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[rng.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(author.ID, s.opts.MaxDays))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("creating posts: %w", err)
	}
	log.Printf("Seeded %d posts", len(posts))
	return posts, nil
}

// seedComments puts a few comments on roughly half the posts.
func (s *Seeder) seedComments(users []*models.User, posts []*models.Post) error {
	rng := s.factory.rng
	total := 0
	for _, post := range posts {
		if rng.Intn(2) == 0 {
			continue
		}
		count := rng.Intn(4) + 1
		for i := 0; i < count; i++ {
			author := users[rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(post, author.ID); err != nil {
				return fmt.Errorf("creating comment on post %d: %w", post.ID, err)
			}
			total++
		}
	}
	log.Printf("Seeded %d comments", total)
	return nil
}
