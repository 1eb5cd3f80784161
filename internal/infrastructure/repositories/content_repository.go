package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// StoryRepositoryImpl implements domain.StoryRepository using GORM
type StoryRepositoryImpl struct {
	db *gorm.DB
}

// DBStory represents the database model for Story
type DBStory struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"size:255"`
	Content   string `gorm:"type:text"`
	AuthorID  uint   `gorm:"index"`
	ImageURL  string `gorm:"size:512"`
	Published bool   `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DBStory) TableName() string { return "stories" }

// NewStoryRepository creates a new story repository
func NewStoryRepository(db *gorm.DB) domain.StoryRepository {
	return &StoryRepositoryImpl{db: db}
}

func (r *StoryRepositoryImpl) Create(ctx context.Context, s *domain.Story) error {
	dbStory := storyToDB(s)
	if err := r.db.WithContext(ctx).Create(dbStory).Error; err != nil {
		return err
	}
	s.ID = dbStory.ID
	return nil
}

func (r *StoryRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Story, error) {
	var dbStory DBStory
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbStory).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrStoryNotFound
		}
		return nil, err
	}
	return storyToDomain(&dbStory), nil
}

func (r *StoryRepositoryImpl) Update(ctx context.Context, s *domain.Story) error {
	return r.db.WithContext(ctx).Save(storyToDB(s)).Error
}

func (r *StoryRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DBStory{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStoryNotFound
	}
	return nil
}

func (r *StoryRepositoryImpl) List(ctx context.Context, publishedOnly bool) ([]domain.Story, error) {
	q := r.db.WithContext(ctx).Model(&DBStory{})
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	var dbStories []DBStory
	if err := q.Order("created_at DESC").Find(&dbStories).Error; err != nil {
		return nil, err
	}
	stories := make([]domain.Story, 0, len(dbStories))
	for i := range dbStories {
		stories = append(stories, *storyToDomain(&dbStories[i]))
	}
	return stories, nil
}

func storyToDB(s *domain.Story) *DBStory {
	return &DBStory{
		ID:        s.ID,
		Title:     s.Title,
		Content:   s.Content,
		AuthorID:  s.AuthorID,
		ImageURL:  s.ImageURL,
		Published: s.Published,
	}
}

func storyToDomain(s *DBStory) *domain.Story {
	return &domain.Story{
		ID:        s.ID,
		Title:     s.Title,
		Content:   s.Content,
		AuthorID:  s.AuthorID,
		ImageURL:  s.ImageURL,
		Published: s.Published,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// MediaRepositoryImpl implements domain.MediaRepository using GORM
type MediaRepositoryImpl struct {
	db *gorm.DB
}

// DBMedia represents the database model for Media
type DBMedia struct {
	ID         uint   `gorm:"primaryKey"`
	URL        string `gorm:"size:512"`
	PublicID   string `gorm:"uniqueIndex;size:255"`
	Folder     string `gorm:"size:128"`
	Caption    string `gorm:"size:255"`
	UploaderID uint   `gorm:"index"`
	CreatedAt  time.Time
}

func (DBMedia) TableName() string { return "media" }

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *gorm.DB) domain.MediaRepository {
	return &MediaRepositoryImpl{db: db}
}

func (r *MediaRepositoryImpl) Create(ctx context.Context, m *domain.Media) error {
	dbMedia := &DBMedia{
		URL:        m.URL,
		PublicID:   m.PublicID,
		Folder:     m.Folder,
		Caption:    m.Caption,
		UploaderID: m.UploaderID,
	}
	if err := r.db.WithContext(ctx).Create(dbMedia).Error; err != nil {
		return err
	}
	m.ID = dbMedia.ID
	return nil
}

func (r *MediaRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Media, error) {
	var dbMedia DBMedia
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbMedia).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrMediaNotFound
		}
		return nil, err
	}
	return mediaToDomain(&dbMedia), nil
}

func (r *MediaRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DBMedia{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrMediaNotFound
	}
	return nil
}

func (r *MediaRepositoryImpl) List(ctx context.Context) ([]domain.Media, error) {
	var dbMedia []DBMedia
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dbMedia).Error; err != nil {
		return nil, err
	}
	media := make([]domain.Media, 0, len(dbMedia))
	for i := range dbMedia {
		media = append(media, *mediaToDomain(&dbMedia[i]))
	}
	return media, nil
}

func mediaToDomain(m *DBMedia) *domain.Media {
	return &domain.Media{
		ID:         m.ID,
		URL:        m.URL,
		PublicID:   m.PublicID,
		Folder:     m.Folder,
		Caption:    m.Caption,
		UploaderID: m.UploaderID,
		CreatedAt:  m.CreatedAt,
	}
}
