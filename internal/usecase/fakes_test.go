package usecase

import (
	"context"
	"sort"
	"strings"

	"movie-favorites/internal/data/entity"
	"movie-favorites/internal/data/repository"
)

// memStore backs the in-memory repository fakes. It enforces the same
// constraints the database does: unique email, unique (user, movie)
// pair, foreign keys, and cascading deletes.
type memStore struct {
	users     map[int64]*entity.User
	movies    map[int64]*entity.Movie
	favorites map[int64]*entity.Favorite

	nextUserID     int64
	nextMovieID    int64
	nextFavoriteID int64
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[int64]*entity.User),
		movies:    make(map[int64]*entity.Movie),
		favorites: make(map[int64]*entity.Favorite),
	}
}

func newMemRepository() (*repository.Repository, *memStore) {
	store := newMemStore()
	repo := &repository.Repository{
		User:     &memUserRepo{store},
		Movie:    &memMovieRepo{store},
		Favorite: &memFavoriteRepo{store},
	}
	return repo, store
}

func (s *memStore) sortedUserIDs() []int64 {
	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *memStore) sortedMovieIDs() []int64 {
	ids := make([]int64, 0, len(s.movies))
	for id := range s.movies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *memStore) sortedFavoriteIDs() []int64 {
	ids := make([]int64, 0, len(s.favorites))
	for id := range s.favorites {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type memUserRepo struct {
	store *memStore
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	r.store.nextUserID++
	user.ID = r.store.nextUserID
	copied := *user
	r.store.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.store.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	var users []*entity.User
	for _, id := range r.store.sortedUserIDs() {
		copied := *r.store.users[id]
		users = append(users, &copied)
	}
	return paginate(users, limit, offset), nil
}

func (r *memUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.store.users)), nil
}

func (r *memUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.store.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, existing := range r.store.users {
		if existing.ID != user.ID && existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	copied := *user
	r.store.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.store.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.users, id)
	for favID, fav := range r.store.favorites {
		if fav.UserID == id {
			delete(r.store.favorites, favID)
		}
	}
	return nil
}

type memMovieRepo struct {
	store *memStore
}

func (r *memMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.store.nextMovieID++
	movie.ID = r.store.nextMovieID
	copied := *movie
	r.store.movies[movie.ID] = &copied
	return nil
}

func (r *memMovieRepo) FindByID(_ context.Context, id int64) (*entity.Movie, error) {
	movie, ok := r.store.movies[id]
	if !ok {
		return nil, nil
	}
	copied := *movie
	return &copied, nil
}

func (r *memMovieRepo) FindByTitle(_ context.Context, title string) (*entity.Movie, error) {
	for _, movie := range r.store.movies {
		if movie.Title == title {
			copied := *movie
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memMovieRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Movie, error) {
	var movies []*entity.Movie
	for _, id := range r.store.sortedMovieIDs() {
		copied := *r.store.movies[id]
		movies = append(movies, &copied)
	}
	return paginate(movies, limit, offset), nil
}

func (r *memMovieRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.store.movies)), nil
}

func (r *memMovieRepo) Search(_ context.Context, filter repository.MovieSearchFilter, limit, offset int) ([]*entity.Movie, error) {
	var movies []*entity.Movie
	for _, id := range r.store.sortedMovieIDs() {
		movie := r.store.movies[id]
		if filter.Title != nil && !strings.Contains(strings.ToLower(movie.Title), strings.ToLower(*filter.Title)) {
			continue
		}
		if filter.Director != nil && !strings.Contains(strings.ToLower(movie.Director), strings.ToLower(*filter.Director)) {
			continue
		}
		if filter.Genre != nil && !strings.Contains(strings.ToLower(movie.Genre), strings.ToLower(*filter.Genre)) {
			continue
		}
		if filter.Year != nil && movie.Year != *filter.Year {
			continue
		}
		if filter.YearMin != nil && movie.Year < *filter.YearMin {
			continue
		}
		if filter.YearMax != nil && movie.Year > *filter.YearMax {
			continue
		}
		if filter.Classification != nil && movie.Classification != *filter.Classification {
			continue
		}
		if filter.DurationMin != nil && movie.DurationMinutes < *filter.DurationMin {
			continue
		}
		if filter.DurationMax != nil && movie.DurationMinutes > *filter.DurationMax {
			continue
		}
		copied := *movie
		movies = append(movies, &copied)
	}
	return paginate(movies, limit, offset), nil
}

func (r *memMovieRepo) FindRecent(_ context.Context, limit int) ([]*entity.Movie, error) {
	var movies []*entity.Movie
	for _, id := range r.store.sortedMovieIDs() {
		copied := *r.store.movies[id]
		movies = append(movies, &copied)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].CreatedAt.After(movies[j].CreatedAt) })
	if limit > 0 && len(movies) > limit {
		movies = movies[:limit]
	}
	return movies, nil
}

func (r *memMovieRepo) FindPopular(_ context.Context, limit int) ([]*entity.RankedMovie, error) {
	counts := make(map[int64]int64)
	for _, fav := range r.store.favorites {
		counts[fav.MovieID]++
	}
	var ranked []*entity.RankedMovie
	for _, id := range r.store.sortedMovieIDs() {
		if counts[id] == 0 {
			continue
		}
		movie := r.store.movies[id]
		ranked = append(ranked, &entity.RankedMovie{ID: movie.ID, Title: movie.Title, FavoriteCount: counts[id]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].FavoriteCount > ranked[j].FavoriteCount })
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (r *memMovieRepo) FindByClassification(_ context.Context, classification string, limit, offset int) ([]*entity.Movie, error) {
	filter := repository.MovieSearchFilter{Classification: &classification}
	return r.Search(context.Background(), filter, limit, offset)
}

func (r *memMovieRepo) Update(_ context.Context, movie *entity.Movie) error {
	if _, ok := r.store.movies[movie.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *movie
	r.store.movies[movie.ID] = &copied
	return nil
}

func (r *memMovieRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.store.movies[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.movies, id)
	for favID, fav := range r.store.favorites {
		if fav.MovieID == id {
			delete(r.store.favorites, favID)
		}
	}
	return nil
}

func (r *memMovieRepo) UpdatePoster(_ context.Context, id int64, poster []byte) error {
	movie, ok := r.store.movies[id]
	if !ok {
		return repository.ErrNotFound
	}
	movie.Poster = append([]byte(nil), poster...)
	return nil
}

func (r *memMovieRepo) GetPoster(_ context.Context, id int64) ([]byte, error) {
	movie, ok := r.store.movies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]byte(nil), movie.Poster...), nil
}

type memFavoriteRepo struct {
	store *memStore
}

func (r *memFavoriteRepo) Create(_ context.Context, favorite *entity.Favorite) error {
	if _, ok := r.store.users[favorite.UserID]; !ok {
		return repository.ErrForeignKey
	}
	if _, ok := r.store.movies[favorite.MovieID]; !ok {
		return repository.ErrForeignKey
	}
	for _, existing := range r.store.favorites {
		if existing.UserID == favorite.UserID && existing.MovieID == favorite.MovieID {
			return repository.ErrDuplicate
		}
	}
	r.store.nextFavoriteID++
	favorite.ID = r.store.nextFavoriteID
	copied := *favorite
	r.store.favorites[favorite.ID] = &copied
	return nil
}

func (r *memFavoriteRepo) FindByID(_ context.Context, id int64) (*entity.Favorite, error) {
	favorite, ok := r.store.favorites[id]
	if !ok {
		return nil, nil
	}
	copied := *favorite
	return &copied, nil
}

func (r *memFavoriteRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Favorite, error) {
	var favorites []*entity.Favorite
	for _, id := range r.store.sortedFavoriteIDs() {
		copied := *r.store.favorites[id]
		favorites = append(favorites, &copied)
	}
	return paginate(favorites, limit, offset), nil
}

func (r *memFavoriteRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.store.favorites)), nil
}

func (r *memFavoriteRepo) detail(favorite *entity.Favorite) *entity.FavoriteDetail {
	user, okUser := r.store.users[favorite.UserID]
	movie, okMovie := r.store.movies[favorite.MovieID]
	if !okUser || !okMovie {
		// Join semantics: orphaned rows vanish from the result
		return nil
	}
	return &entity.FavoriteDetail{
		FavoriteID: favorite.ID,
		UserID:     user.ID,
		UserName:   user.Name,
		MovieID:    movie.ID,
		MovieTitle: movie.Title,
		MarkedAt:   favorite.MarkedAt,
	}
}

func (r *memFavoriteRepo) FindAllDetailed(_ context.Context) ([]*entity.FavoriteDetail, error) {
	var details []*entity.FavoriteDetail
	for _, id := range r.store.sortedFavoriteIDs() {
		if detail := r.detail(r.store.favorites[id]); detail != nil {
			details = append(details, detail)
		}
	}
	return details, nil
}

func (r *memFavoriteRepo) FindDetailByID(_ context.Context, id int64) (*entity.FavoriteDetail, error) {
	favorite, ok := r.store.favorites[id]
	if !ok {
		return nil, nil
	}
	return r.detail(favorite), nil
}

func (r *memFavoriteRepo) FindByUser(_ context.Context, userID int64) ([]*entity.FavoriteDetail, error) {
	var details []*entity.FavoriteDetail
	for _, id := range r.store.sortedFavoriteIDs() {
		favorite := r.store.favorites[id]
		if favorite.UserID != userID {
			continue
		}
		if detail := r.detail(favorite); detail != nil {
			details = append(details, detail)
		}
	}
	return details, nil
}

func (r *memFavoriteRepo) FindByMovie(_ context.Context, movieID int64) ([]*entity.FavoriteDetail, error) {
	var details []*entity.FavoriteDetail
	for _, id := range r.store.sortedFavoriteIDs() {
		favorite := r.store.favorites[id]
		if favorite.MovieID != movieID {
			continue
		}
		if detail := r.detail(favorite); detail != nil {
			details = append(details, detail)
		}
	}
	return details, nil
}

func (r *memFavoriteRepo) Exists(_ context.Context, userID, movieID int64) (bool, error) {
	for _, favorite := range r.store.favorites {
		if favorite.UserID == userID && favorite.MovieID == movieID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memFavoriteRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.store.favorites[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.favorites, id)
	return nil
}

func (r *memFavoriteRepo) DeleteAllByUser(_ context.Context, userID int64) (int64, error) {
	var deleted int64
	for id, favorite := range r.store.favorites {
		if favorite.UserID == userID {
			delete(r.store.favorites, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memFavoriteRepo) Stats(_ context.Context) (*entity.FavoriteStats, error) {
	stats := &entity.FavoriteStats{TotalFavorites: int64(len(r.store.favorites))}

	userCounts := make(map[int64]int64)
	movieCounts := make(map[int64]int64)
	genreCounts := make(map[string]int64)
	for _, favorite := range r.store.favorites {
		userCounts[favorite.UserID]++
		movieCounts[favorite.MovieID]++
		if movie, ok := r.store.movies[favorite.MovieID]; ok {
			for _, genre := range strings.Split(movie.Genre, ",") {
				genreCounts[strings.TrimSpace(genre)]++
			}
		}
	}

	for _, id := range r.store.sortedUserIDs() {
		if stats.TopUser == nil || userCounts[id] > stats.TopUser.FavoriteCount {
			if userCounts[id] > 0 {
				stats.TopUser = &entity.RankedUser{ID: id, Name: r.store.users[id].Name, FavoriteCount: userCounts[id]}
			}
		}
	}
	for _, id := range r.store.sortedMovieIDs() {
		if stats.TopMovie == nil || movieCounts[id] > stats.TopMovie.FavoriteCount {
			if movieCounts[id] > 0 {
				stats.TopMovie = &entity.RankedMovie{ID: id, Title: r.store.movies[id].Title, FavoriteCount: movieCounts[id]}
			}
		}
	}
	genres := make([]string, 0, len(genreCounts))
	for genre := range genreCounts {
		genres = append(genres, genre)
	}
	sort.Strings(genres)
	for _, genre := range genres {
		if stats.TopGenre == nil || genreCounts[genre] > stats.TopGenre.FavoriteCount {
			stats.TopGenre = &entity.RankedGenre{Genre: genre, FavoriteCount: genreCounts[genre]}
		}
	}

	return stats, nil
}

func (r *memFavoriteRepo) FindRecommendations(_ context.Context, userID int64, limit int) ([]*entity.Movie, error) {
	favoriteGenres := make(map[string]bool)
	favorited := make(map[int64]bool)
	for _, favorite := range r.store.favorites {
		if favorite.UserID != userID {
			continue
		}
		favorited[favorite.MovieID] = true
		if movie, ok := r.store.movies[favorite.MovieID]; ok {
			for _, genre := range strings.Split(movie.Genre, ",") {
				favoriteGenres[strings.TrimSpace(genre)] = true
			}
		}
	}

	var movies []*entity.Movie
	for _, id := range r.store.sortedMovieIDs() {
		if favorited[id] {
			continue
		}
		movie := r.store.movies[id]
		for _, genre := range strings.Split(movie.Genre, ",") {
			if favoriteGenres[strings.TrimSpace(genre)] {
				copied := *movie
				movies = append(movies, &copied)
				break
			}
		}
	}
	if limit > 0 && len(movies) > limit {
		movies = movies[:limit]
	}
	return movies, nil
}

func paginate[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
