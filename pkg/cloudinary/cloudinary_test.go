package cloudinary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildOptimizedImageURL(t *testing.T) {
	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/q_auto,f_auto,w_800,c_fill/shop/image-1",
		BuildOptimizedImageURL("demo", "shop/image-1", 0))
	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/q_auto,f_auto,w_200,c_fill/image-1",
		BuildOptimizedImageURL("demo", "image-1", 200))
}
