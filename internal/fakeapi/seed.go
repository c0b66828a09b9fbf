package fakeapi

import (
	"fmt"

	"github.com/five82/folio/internal/placeholder"
)

const (
	seedUsers           = 3
	seedPostsPerUser    = 4
	seedCommentsPerPost = 3
	seedAlbumsPerUser   = 2
	seedPhotosPerAlbum  = 4
	seedPhotoHost       = "https://via.placeholder.com"
	seedThumbnailSize   = 150
	seedPhotoSize       = 600
)

// Seed builds a small deterministic dataset shaped like the real API.
func Seed() Dataset {
	var data Dataset
	var postID, commentID, albumID, photoID int64

	for user := int64(1); user <= seedUsers; user++ {
		for i := 0; i < seedPostsPerUser; i++ {
			postID++
			data.Posts = append(data.Posts, placeholder.Post{
				ID:     postID,
				UserID: user,
				Title:  fmt.Sprintf("Post %d by user %d", postID, user),
				Body:   fmt.Sprintf("Body of post %d.\nWritten for the offline demo.", postID),
			})
			for j := 0; j < seedCommentsPerPost; j++ {
				commentID++
				data.Comments = append(data.Comments, placeholder.Comment{
					ID:     commentID,
					PostID: postID,
					Name:   fmt.Sprintf("Comment %d", commentID),
					Email:  fmt.Sprintf("reader%d@example.com", commentID),
					Body:   fmt.Sprintf("Reply %d on post %d.", j+1, postID),
				})
			}
		}
		for i := 0; i < seedAlbumsPerUser; i++ {
			albumID++
			data.Albums = append(data.Albums, placeholder.Album{
				ID:     albumID,
				UserID: user,
				Title:  fmt.Sprintf("Album %d", albumID),
			})
			for j := 0; j < seedPhotosPerAlbum; j++ {
				photoID++
				data.Photos = append(data.Photos, placeholder.Photo{
					ID:           photoID,
					AlbumID:      albumID,
					Title:        fmt.Sprintf("Photo %d", photoID),
					URL:          fmt.Sprintf("%s/%d/%06x", seedPhotoHost, seedPhotoSize, photoID*0x1f3a),
					ThumbnailURL: fmt.Sprintf("%s/%d/%06x", seedPhotoHost, seedThumbnailSize, photoID*0x1f3a),
				})
			}
		}
	}
	return data
}
