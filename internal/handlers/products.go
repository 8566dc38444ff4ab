package handlers

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dansdevelopments/catalog-admin/internal/models"
	"github.com/dansdevelopments/catalog-admin/internal/store"
	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/nfnt/resize"
)

// featuredLimit caps the random featured sample on the listing page.
const featuredLimit = 4

type ProductHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
	UploadDir    string // defaults to static/uploads
}

func (h *ProductHandler) render(w http.ResponseWriter, r *http.Request, name string, data map[string]interface{}) {
	tmpl := h.Templates.Get(name)
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data["CsrfField"] = csrf.TemplateField(r)
	data["Flashes"] = GetFlash(session)
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// productByPathID resolves the {id} path value, answering 400/404/500 itself.
// A nil product means the response has already been written.
func (h *ProductHandler) productByPathID(w http.ResponseWriter, r *http.Request) *models.Product {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return nil
	}
	product, err := h.Store.GetProductByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
		} else {
			http.Error(w, "Error fetching product", http.StatusInternalServerError)
		}
		return nil
	}
	return product
}

// List shows all products plus a random sample of featured ones.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.GetAllProducts()
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	featured, err := h.Store.GetFeaturedProducts(featuredLimit)
	if err != nil {
		http.Error(w, "Error fetching featured products", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "products.html", map[string]interface{}{
		"Products":         products,
		"FeaturedProducts": featured,
	})
}

func (h *ProductHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Store.GetAllCategories()
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}
	h.render(w, r, "create_product.html", map[string]interface{}{
		"Categories": categories,
	})
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	if err := parseProductForm(r); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		session.Save(r, w)
		http.Redirect(w, r, "/products/create", http.StatusSeeOther)
		return
	}

	name := r.FormValue("name")
	sku := r.FormValue("sku")
	priceStr := r.FormValue("price")
	desc := r.FormValue("description")

	price, fieldErrors := validateProductFields(name, sku, priceStr)
	if len(fieldErrors) > 0 {
		categories, err := h.Store.GetAllCategories()
		if err != nil {
			http.Error(w, "Error fetching categories", http.StatusInternalServerError)
			return
		}
		h.render(w, r, "create_product.html", map[string]interface{}{
			"Categories": categories,
			"Errors":     fieldErrors,
			"Payload":    r.PostForm,
		})
		return
	}

	category, err := h.Store.GetCategoryByName(r.FormValue("category"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Category not found", http.StatusNotFound)
		} else {
			http.Error(w, "Error fetching category", http.StatusInternalServerError)
		}
		return
	}

	urls := collectImageURLs(r)
	uploaded, err := h.saveUploadedImage(r)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		session.Save(r, w)
		http.Redirect(w, r, "/products/create", http.StatusSeeOther)
		return
	}
	if uploaded != "" {
		urls = append(urls, uploaded)
	}

	product := &models.Product{
		Name:        name,
		SKU:         sku,
		Price:       price,
		Description: desc,
		CategoryID:  category.ID,
	}
	if err := h.Store.CreateProduct(product); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving product to database."})
		session.Save(r, w)
		http.Redirect(w, r, "/products/create", http.StatusSeeOther)
		return
	}

	seen := make(map[string]bool, len(urls))
	for _, url := range urls {
		if seen[url] {
			continue
		}
		seen[url] = true
		if err := h.Store.CreateProductImage(product.ID, url); err != nil {
			http.Error(w, "Error saving product image", http.StatusInternalServerError)
			return
		}
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product created successfully!"})
	session.Save(r, w)
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (h *ProductHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	product := h.productByPathID(w, r)
	if product == nil {
		return
	}
	categories, err := h.Store.GetAllCategories()
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}
	images, err := h.Store.GetProductImages(product.ID)
	if err != nil {
		http.Error(w, "Error fetching product images", http.StatusInternalServerError)
		return
	}
	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.URL)
	}

	h.render(w, r, "edit_product.html", map[string]interface{}{
		"Product":    product,
		"Categories": categories,
		"Images":     urls,
	})
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	product := h.productByPathID(w, r)
	if product == nil {
		return
	}

	if err := parseProductForm(r); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		session.Save(r, w)
		http.Redirect(w, r, fmt.Sprintf("/products/%d/edit", product.ID), http.StatusSeeOther)
		return
	}

	name := r.FormValue("name")
	sku := r.FormValue("sku")
	priceStr := r.FormValue("price")
	desc := r.FormValue("description")

	price, fieldErrors := validateProductFields(name, sku, priceStr)
	if len(fieldErrors) > 0 {
		categories, err := h.Store.GetAllCategories()
		if err != nil {
			http.Error(w, "Error fetching categories", http.StatusInternalServerError)
			return
		}
		h.render(w, r, "edit_product.html", map[string]interface{}{
			"Product":    product,
			"Categories": categories,
			"Errors":     fieldErrors,
			"Payload":    r.PostForm,
		})
		return
	}

	category, err := h.Store.GetCategoryByName(r.FormValue("category"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Category not found", http.StatusNotFound)
		} else {
			http.Error(w, "Error fetching category", http.StatusInternalServerError)
		}
		return
	}

	urls := collectImageURLs(r)
	uploaded, err := h.saveUploadedImage(r)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		session.Save(r, w)
		http.Redirect(w, r, fmt.Sprintf("/products/%d/edit", product.ID), http.StatusSeeOther)
		return
	}
	if uploaded != "" {
		urls = append(urls, uploaded)
	}

	product.Name = name
	product.SKU = sku
	product.Price = price
	product.Description = desc
	product.CategoryID = category.ID
	if err := h.Store.UpdateProduct(product); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating product."})
		session.Save(r, w)
		http.Redirect(w, r, fmt.Sprintf("/products/%d/edit", product.ID), http.StatusSeeOther)
		return
	}

	if err := h.Store.ReconcileProductImages(product.ID, urls); err != nil {
		http.Error(w, "Error updating product images", http.StatusInternalServerError)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product updated successfully!"})
	session.Save(r, w)
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (h *ProductHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	product := h.productByPathID(w, r)
	if product == nil {
		return
	}
	h.render(w, r, "delete_product.html", map[string]interface{}{
		"Product": product,
	})
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	product := h.productByPathID(w, r)
	if product == nil {
		return
	}

	if err := h.Store.DeleteProduct(product.ID); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting product."})
		session.Save(r, w)
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product deleted successfully!"})
	session.Save(r, w)
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// ToggleFeatured flips the featured flag and redirects, whatever the method.
func (h *ProductHandler) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	product := h.productByPathID(w, r)
	if product == nil {
		return
	}

	if err := h.Store.SetProductFeatured(product.ID, !product.Featured); err != nil {
		http.Error(w, "Error updating product", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// parseProductForm accepts both multipart submissions (when an image file is
// attached) and plain urlencoded ones.
func parseProductForm(r *http.Request) error {
	err := r.ParseMultipartForm(10 << 20) // 10MB
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return nil
}

// saveUploadedImage stores an optional image_file upload, resized to 800px
// width, and returns its serving URL. Returns "" when no file was attached.
func (h *ProductHandler) saveUploadedImage(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image_file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", errors.New("Failed to read uploaded image.")
	}
	defer file.Close()

	var img image.Image
	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		return "", errors.New("Unsupported image format. Only PNG, JPG, JPEG are allowed.")
	}
	if err != nil {
		return "", errors.New("Failed to decode image.")
	}

	resized := resize.Resize(800, 0, img, resize.Lanczos3)

	dir := h.UploadDir
	if dir == "" {
		dir = filepath.Join("static", "uploads")
	}
	filename := fmt.Sprintf("%s.jpg", uuid.New().String())
	out, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", errors.New("Error saving image file.")
	}
	defer out.Close()

	if err := jpeg.Encode(out, resized, &jpeg.Options{Quality: 80}); err != nil {
		return "", errors.New("Error encoding image.")
	}
	return "/static/uploads/" + filename, nil
}
