package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	SkipBcrypt  bool
	MaxDays     int
}

// groupPresets are the categories every fresh database starts with.
var groupPresets = []struct {
	Title string
	Slug  string
	Desc  string
}{
	{"Programming", "programming", "Code, languages and tooling."},
	{"Books", "books", "What everyone is reading."},
	{"Travel", "travel", "Trip reports and itineraries."},
	{"Music", "music", "Albums, gigs and gear."},
	{"Food", "food", "Recipes and restaurant notes."},
	{"Science", "science", "Papers, discoveries, rabbit holes."},
	{"Homelab", "homelab", "Self-hosting and hardware."},
	{"Art", "art", "Work in progress and finished pieces."},
}

// Seed populates the database with demo data: users, groups, posts filed
// into groups, comments and a follow mesh between the generated users.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d users created", len(users))

	groups, err := createOrGetGroups(db, users)
	if err != nil {
		return fmt.Errorf("failed to create groups: %w", err)
	}
	log.Printf("%d groups available", len(groups))

	posts, err := createPosts(factory, users, groups, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := createComments(factory, users, posts); err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}

	if err := createFollowMesh(db, users); err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}

	log.Println("Database seeding completed successfully")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, follows, posts, images, groups, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a couple of stable accounts for manual login
	if count >= 2 {
		for _, name := range []string{"ada", "test"} {
			n := name
			user, err := factory.CreateUser(func(u *models.User) {
				u.Username = n
				u.Email = fmt.Sprintf("%s@example.com", n)
				u.Bio = "One of the originals."
			})
			if err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user %d: %v", i, err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}
	return users, nil
}

func createOrGetGroups(db *gorm.DB, users []*models.User) ([]models.Group, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	groups := make([]models.Group, 0, len(groupPresets))

	for _, preset := range groupPresets {
		var group models.Group
		attrs := models.Group{Title: preset.Title, Description: preset.Desc}
		if len(users) > 0 {
			attrs.CreatedByUserID = &users[r.Intn(len(users))].ID
		}

		err := db.Where(models.Group{Slug: preset.Slug}).
			Attrs(attrs).
			FirstOrCreate(&group).Error
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func createPosts(factory *Factory, users []*models.User, groups []models.Group, count int) ([]*models.Post, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]*models.Post, 0, count)

	for i := 0; i < count; i++ {
		user := users[r.Intn(len(users))]

		// roughly two thirds of posts land in a group
		var group *models.Group
		if len(groups) > 0 && r.Float32() < 0.66 {
			group = &groups[r.Intn(len(groups))]
		}

		post, err := factory.CreatePost(user, group)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}
	return posts, nil
}

func createComments(factory *Factory, users []*models.User, posts []*models.Post) error {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, post := range posts {
		for n := r.Intn(4); n > 0; n-- {
			commenter := users[r.Intn(len(users))]
			if _, err := factory.CreateComment(commenter, post); err != nil {
				return err
			}
		}
	}
	return nil
}

// createFollowMesh gives every user a handful of authors to follow so the
// follow feed has content on first login. Self-follows are skipped and the
// unique pair index absorbs duplicate picks.
func createFollowMesh(db *gorm.DB, users []*models.User) error {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, follower := range users {
		for n := r.Intn(5) + 1; n > 0; n-- {
			author := users[r.Intn(len(users))]
			if author.ID == follower.ID {
				continue
			}
			follow := models.Follow{UserID: follower.ID, AuthorID: author.ID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
