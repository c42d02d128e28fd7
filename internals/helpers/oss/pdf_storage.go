// internals/helpers/oss/pdf_storage.go
package helper

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

// Key scheme: ncert-pdfs/{subject}/{classLevel}/{chapterId}.pdf
const pdfPrefix = "ncert-pdfs"

// batas upload PDF admin
const MaxPDFSize = int64(50 * 1024 * 1024)

/* =======================================================================
   PDF Storage Service
======================================================================= */

type PDFStorageService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
}

func NewPDFStorageFromEnv() (*PDFStorageService, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	sts := getEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *oss.Client
		err    error
	)
	if sts != "" {
		client, err = oss.New(endpoint, ak, sk, oss.SecurityToken(sts))
	} else {
		client, err = oss.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	// Verifikasi ringan lokasi bucket
	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 && se.Code == "AccessDenied" {
			log.Printf("[OSS] warn: skip location check due to AccessDenied (bucket=%s). Continuing.", bucketName)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", bucketName, loc)
	}

	return &PDFStorageService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
	}, nil
}

// PDFKey membentuk object key kanonik untuk satu bab.
func PDFKey(subject, classLevel, chapter string) string {
	return fmt.Sprintf("%s/%s/%s/%s.pdf", pdfPrefix, safePart(subject), safePart(classLevel), safePart(chapter))
}

/* =======================================================================
   Operasi PDF per bab
======================================================================= */

func (s *PDFStorageService) Exists(ctx context.Context, subject, classLevel, chapter string) (bool, error) {
	return s.Bucket.IsObjectExist(PDFKey(subject, classLevel, chapter), oss.WithContext(ctx))
}

func (s *PDFStorageService) GetBytes(ctx context.Context, subject, classLevel, chapter string) ([]byte, error) {
	key := PDFKey(subject, classLevel, chapter)
	log.Printf("📄 Ambil PDF dari OSS: %s", key)

	body, err := s.Bucket.GetObject(key, oss.WithContext(ctx))
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("PDF tidak ditemukan: %s", key)
		}
		return nil, fmt.Errorf("ambil PDF %s: %w", key, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("baca PDF %s: %w", key, err)
	}
	log.Printf("✅ PDF %s (%d bytes)", key, len(data))
	return data, nil
}

func (s *PDFStorageService) UploadPDF(ctx context.Context, subject, classLevel, chapter string, r io.Reader) (string, error) {
	key := PDFKey(subject, classLevel, chapter)

	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType("application/pdf"),
		oss.ContentDisposition("inline"),
		oss.Meta("subject", safePart(subject)),
		oss.Meta("class-level", safePart(classLevel)),
		oss.Meta("chapter", safePart(chapter)),
		oss.Meta("uploaded-at", time.Now().UTC().Format(time.RFC3339)),
	}
	if err := s.Bucket.PutObject(key, r, opts...); err != nil {
		return "", fmt.Errorf("upload PDF %s: %w", key, err)
	}
	log.Printf("✅ Upload PDF sukses: %s", key)
	return s.PublicURL(key), nil
}

// PresignUploadURL membuat signed URL untuk upload langsung dari admin panel.
func (s *PDFStorageService) PresignUploadURL(subject, classLevel, chapter string, expiry time.Duration) (string, error) {
	key := PDFKey(subject, classLevel, chapter)
	url, err := s.Bucket.SignURL(key, oss.HTTPPut, int64(expiry.Seconds()), oss.ContentType("application/pdf"))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return url, nil
}

type PDFObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// ListPDFs mendaftar seluruh objek di bawah prefix ncert-pdfs/.
func (s *PDFStorageService) ListPDFs(ctx context.Context) ([]PDFObject, error) {
	var out []PDFObject
	marker := ""
	for {
		res, err := s.Bucket.ListObjects(
			oss.Prefix(pdfPrefix+"/"),
			oss.Marker(marker),
			oss.MaxKeys(1000),
			oss.WithContext(ctx),
		)
		if err != nil {
			return nil, fmt.Errorf("list PDF: %w", err)
		}
		for _, obj := range res.Objects {
			out = append(out, PDFObject{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
		}
		if !res.IsTruncated {
			break
		}
		marker = res.NextMarker
	}
	return out, nil
}

func (s *PDFStorageService) DeletePDF(ctx context.Context, subject, classLevel, chapter string) error {
	return s.Bucket.DeleteObject(PDFKey(subject, classLevel, chapter), oss.WithContext(ctx))
}

/* =======================================================================
   URL & utils
======================================================================= */

func (s *PDFStorageService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if base := getEnv("ALI_OSS_PUBLIC_BASE"); base != "" {
		return strings.TrimRight(base, "/") + "/" + key
	}
	end := s.Endpoint
	end = strings.TrimPrefix(end, "https://")
	end = strings.TrimPrefix(end, "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, key)
}

func IsNotFound(err error) bool {
	if e, ok := err.(oss.ServiceError); ok {
		return e.StatusCode == 404
	}
	return false
}

func safePart(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(s, "/")
	r := strings.NewReplacer(" ", "-", "_", "-")
	s = r.Replace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return "unknown"
	}
	return s
}
